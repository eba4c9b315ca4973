package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client is a minimal Telegram Bot API client used for server-initiated
// notifications.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

// Response is the envelope every Bot API method returns.
type Response struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL builds a client against a non-default API host.
// Used by tests to point at a local server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// SendMessage delivers an HTML-formatted message to the given chat. A
// transport failure or a non-ok API response is returned as an error, never
// swallowed.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if c.token == "" {
		return fmt.Errorf("bot token not configured")
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram HTTP %d: decode response: %w", resp.StatusCode, err)
	}

	if !apiResp.Ok {
		if apiResp.Description != "" {
			return fmt.Errorf("telegram API error: %s", apiResp.Description)
		}
		return fmt.Errorf("telegram HTTP %d", resp.StatusCode)
	}

	return nil
}
