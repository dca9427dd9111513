package recommendcontroller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

const (
	defaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultModel      = "google/gemini-2.5-flash"
)

// Sentinel errors for the two gateway statuses the storefront surfaces to
// the user with their own status codes.
var (
	ErrRateLimited      = errors.New("ai gateway rate limited")
	ErrCreditsExhausted = errors.New("ai gateway credits exhausted")
)

// Gateway is a thin client for the chat-completions endpoint. Tests point
// URL at a local httptest server.
type Gateway struct {
	URL    string
	APIKey string
	Model  string
	Client *http.Client
}

// NewGatewayFromEnv builds the gateway client from AI_GATEWAY_URL,
// AI_GATEWAY_API_KEY and AI_MODEL, with production defaults.
func NewGatewayFromEnv() *Gateway {
	gw := &Gateway{
		URL:    os.Getenv("AI_GATEWAY_URL"),
		APIKey: os.Getenv("AI_GATEWAY_API_KEY"),
		Model:  os.Getenv("AI_MODEL"),
		Client: &http.Client{},
	}
	if gw.URL == "" {
		gw.URL = defaultGatewayURL
	}
	if gw.Model == "" {
		gw.Model = defaultModel
	}
	return gw
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user message pair and returns the first choice's
// message content verbatim.
func (g *Gateway) Complete(system, user string) (string, error) {
	payload := chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", g.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach AI gateway: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode == http.StatusPaymentRequired {
		return "", ErrCreditsExhausted
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI gateway error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse AI gateway response: %v", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("AI gateway returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
