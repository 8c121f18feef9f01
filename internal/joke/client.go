// Package joke fetches random two-part jokes.
package joke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/apperr"
)

const msgFailed = "Failed to fetch a joke. Please try again later."

// Joke is a setup and its punchline.
type Joke struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// String renders the joke on one line.
func (j Joke) String() string {
	return fmt.Sprintf("%s | 👉 %s", j.Setup, j.Punchline)
}

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.Named("joke"),
	}
}

// Random fetches one joke. Every failure maps to the same network error.
func (c *Client) Random(ctx context.Context) (Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/random_joke", nil)
	if err != nil {
		return Joke{}, apperr.Network(msgFailed, fmt.Errorf("create request: %w", err))
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.Error(err))
		return Joke{}, apperr.Network(msgFailed, fmt.Errorf("joke request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("unexpected status", zap.Int("status", resp.StatusCode))
		return Joke{}, apperr.Network(msgFailed, fmt.Errorf("HTTP error! status: %d", resp.StatusCode))
	}

	var j Joke
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		c.log.Warn("decode failed", zap.Error(err))
		return Joke{}, apperr.Network(msgFailed, fmt.Errorf("decode joke: %w", err))
	}
	if j.Setup == "" && j.Punchline == "" {
		return Joke{}, apperr.Network(msgFailed, errors.New("empty joke"))
	}
	return j, nil
}
