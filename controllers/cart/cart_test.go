package cartcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func createTestProduct(t *testing.T, db *gorm.DB, name, category string, rating float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Category: category,
		Price:    99.0,
		Rating:   rating,
		InStock:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func newCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the JWT middleware: every request belongs to testUserID.
	r.Use(func(c *gin.Context) { c.Set("user_id", testUserID) })
	r.GET("/user/cart", GetCart(db))
	r.POST("/user/cart", AddCartItem(db))
	r.PUT("/user/cart/:product_id", UpdateCartItemQuantity(db))
	r.DELETE("/user/cart/:product_id", DeleteCartItem(db))
	r.DELETE("/user/cart", ClearCart(db))
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

func TestAddCartItemUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	product := createTestProduct(t, db, "Wireless Headphones", "electronics", 4.5)

	rr := doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 1})
	assert.Equal(t, http.StatusOK, rr.Code)

	// Adding the same product again must not create a second row.
	rr = doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 3})
	assert.Equal(t, http.StatusOK, rr.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", testUserID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].ProductID)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)

	rr := doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateQuantityBelowOneRejected(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	product := createTestProduct(t, db, "Smart Bulb", "smart home", 4.0)

	rr := doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodPut, "/user/cart/1", gin.H{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// No update call reached the store.
	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", testUserID, product.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	product := createTestProduct(t, db, "USB-C Cable", "accessories", 4.1)

	rr := doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodPut, "/user/cart/1", gin.H{"quantity": 5})
	assert.Equal(t, http.StatusOK, rr.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", testUserID, product.ID).First(&item).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestDeleteCartItem(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	product := createTestProduct(t, db, "Phone Stand", "accessories", 3.9)

	rr := doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodDelete, "/user/cart/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", testUserID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again reports not found.
	rr = doJSON(r, http.MethodDelete, "/user/cart/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	p1 := createTestProduct(t, db, "Speaker", "electronics", 4.7)
	p2 := createTestProduct(t, db, "Hub", "smart home", 4.3)

	doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": p1.ID, "quantity": 1})
	doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": p2.ID, "quantity": 2})

	rr := doJSON(r, http.MethodDelete, "/user/cart", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", testUserID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCartPreloadsProducts(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db)
	product := createTestProduct(t, db, "Keyboard", "electronics", 4.6)

	doJSON(r, http.MethodPost, "/user/cart", gin.H{"product_id": product.ID, "quantity": 1})

	rr := doJSON(r, http.MethodGet, "/user/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Keyboard", items[0].Product.Name)
}
