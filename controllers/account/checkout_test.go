package accountcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ameerkhan0987/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = "user-1"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Product{},
		&models.CartItem{},
		&models.Purchase{},
		&models.BrowsingHistoryEntry{},
	))
	return db
}

func newAccountRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", testUserID) })
	r.GET("/user/profile", GetProfile(db))
	r.PUT("/user/profile", UpdateProfile(db))
	r.GET("/user/purchases", GetPurchases(db))
	r.POST("/user/checkout", Checkout(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func addToCart(t *testing.T, db *gorm.DB, productID uint, quantity int) {
	t.Helper()
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    testUserID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}).Error)
}

func TestCheckoutConvertsCartToPurchases(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	product := models.Product{Name: "Speaker", Category: "electronics", Price: 79.5, Rating: 4.5, InStock: true}
	require.NoError(t, db.Create(&product).Error)
	addToCart(t, db, product.ID, 2)

	rr := doJSON(r, http.MethodPost, "/user/checkout", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	// One purchase row per unit, priced at the product's current price.
	var purchases []models.Purchase
	require.NoError(t, db.Where("user_id = ?", testUserID).Find(&purchases).Error)
	require.Len(t, purchases, 2)
	for _, p := range purchases {
		assert.Equal(t, product.ID, p.ProductID)
		assert.Equal(t, 79.5, p.PriceAtPurchase)
		assert.NotEmpty(t, p.Reference)
	}
	assert.Equal(t, purchases[0].Reference, purchases[1].Reference)

	// Cart is emptied.
	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", testUserID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	rr := doJSON(r, http.MethodPost, "/user/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckoutOutOfStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	inStock := models.Product{Name: "Cable", Category: "accessories", Price: 10, Rating: 4.0, InStock: true}
	outOfStock := models.Product{Name: "Camera", Category: "electronics", Price: 250, Rating: 4.9, InStock: false}
	require.NoError(t, db.Create(&inStock).Error)
	require.NoError(t, db.Create(&outOfStock).Error)
	addToCart(t, db, inStock.ID, 1)
	addToCart(t, db, outOfStock.ID, 1)

	rr := doJSON(r, http.MethodPost, "/user/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Nothing was purchased and the cart is untouched.
	var purchaseCount, cartCount int64
	db.Model(&models.Purchase{}).Count(&purchaseCount)
	db.Model(&models.CartItem{}).Where("user_id = ?", testUserID).Count(&cartCount)
	assert.Equal(t, int64(0), purchaseCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestGetPurchasesNewestFirstCappedAtTen(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	product := models.Product{Name: "Mouse", Category: "electronics", Price: 35, Rating: 4.2, InStock: true}
	require.NoError(t, db.Create(&product).Error)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Purchase{
			Reference:       "ref",
			UserID:          testUserID,
			ProductID:       product.ID,
			PriceAtPurchase: product.Price,
			PurchasedAt:     base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	rr := doJSON(r, http.MethodGet, "/user/purchases", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var purchases []models.Purchase
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &purchases))
	require.Len(t, purchases, 10)
	assert.True(t, purchases[0].PurchasedAt.After(purchases[9].PurchasedAt))
	assert.Equal(t, "Mouse", purchases[0].Product.Name)
}

func TestProfileRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	require.NoError(t, db.Create(&models.Profile{
		ID:       testUserID,
		Email:    "shopper@example.com",
		FullName: "First Shopper",
	}).Error)

	rr := doJSON(r, http.MethodPut, "/user/profile", gin.H{"full_name": "Renamed Shopper"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodGet, "/user/profile", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, "Renamed Shopper", profile.FullName)
	assert.Equal(t, "shopper@example.com", profile.Email)
}

func TestProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	r := newAccountRouter(db)

	rr := doJSON(r, http.MethodGet, "/user/profile", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
