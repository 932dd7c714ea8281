// Package quotes загружает цитату дня из внешнего сервиса.
// Цитата — украшение, а не данные: любой сбой или таймаут даёт
// локальную цитату, и никогда не блокирует и не роняет запрос.
package quotes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 3 * time.Second

// DefaultQuote возвращается при любом сбое внешнего сервиса.
var DefaultQuote = Quote{
	Text:   "Take care of your body. It's the only place you have to live.",
	Author: "Jim Rohn",
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента. timeoutSeconds ограничивается тремя секундами
// сверху: дольше ждать цитату нет смысла.
func NewClient(baseURL string, timeoutSeconds int) *Client {
	timeout := defaultTimeout
	if timeoutSeconds > 0 && time.Duration(timeoutSeconds)*time.Second < timeout {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Today возвращает цитату дня. Ошибок не бывает: сбой даёт DefaultQuote.
func (c *Client) Today(ctx context.Context) Quote {
	if c.baseURL == "" {
		return DefaultQuote
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/today", nil)
	if err != nil {
		return DefaultQuote
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DefaultQuote
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return DefaultQuote
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return DefaultQuote
	}
	if quote.Text == "" {
		return DefaultQuote
	}
	return quote
}
