// Package remote is a client for a backend that implements the same
// parse-and-answer contract as the local engine. Callers prefer it when
// configured and fall back to the local engine on any failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"jobradar/internal/answerer"
)

// Client talks to a remote answering backend.
type Client struct {
	baseURL string
	client  *http.Client
}

type answerRequest struct {
	PageText string            `json:"pageText"`
	Context  map[string]string `json:"context,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return eris.Wrap(err, "remote: build health request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "remote: health request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("remote: health returned %d", resp.StatusCode)
	}
	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return eris.Wrap(err, "remote: decode health response")
	}
	if hr.Status != "ok" {
		return eris.Errorf("remote: backend status %q", hr.Status)
	}
	return nil
}

// ParseAndAnswer sends the page text to the backend and returns its answers.
func (c *Client) ParseAndAnswer(ctx context.Context, pageText string, pageContext map[string]string) (*answerer.PageAnswers, error) {
	body, err := json.Marshal(answerRequest{PageText: pageText, Context: pageContext})
	if err != nil {
		return nil, eris.Wrap(err, "remote: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/parse-and-answer", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "remote: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "remote: parse-and-answer request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.New(fmt.Sprintf("remote: backend returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var answers answerer.PageAnswers
	if err := json.NewDecoder(resp.Body).Decode(&answers); err != nil {
		return nil, eris.Wrap(err, "remote: decode response")
	}
	return &answers, nil
}
