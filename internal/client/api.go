// Package client implements the record-service client: a typed HTTP API
// wrapper plus the UI state controller driven by the terminal frontend.
//
// This file contains the API wrapper. Every call performs one HTTP request
// and decodes either the success body or the server's error envelope. There
// are no retries; a failed call is terminal for that action and must be
// re-triggered by the user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tbourn/go-form-backend/internal/domain"
)

// Submission aliases the server-side record type; client and server share
// one wire shape.
type Submission = domain.Submission

// APIError carries the HTTP status and the human-readable message extracted
// from a non-2xx response. Message is the server-provided text when the body
// is the JSON error envelope, else a generic status-derived fallback.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// SubmissionInput is the three-field payload for create and update calls.
type SubmissionInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Client is a thin HTTP wrapper over the submissions API. The zero value is
// not usable; construct with New.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a Client rooted at baseURL (e.g. "http://localhost:8080/api").
// A trailing slash on baseURL is tolerated. When hc is nil a default client
// with a 15s timeout is used.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

// List fetches all submissions, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Submission, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/submissions", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var out []domain.Submission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new submission and returns the created record including the
// store-assigned id and created_at.
func (c *Client) Create(ctx context.Context, in SubmissionInput) (*domain.Submission, error) {
	resp, err := c.send(ctx, http.MethodPost, c.baseURL+"/submissions", in)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}
	var out domain.Submission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites the three fields of the submission identified by id and
// returns the updated record.
func (c *Client) Update(ctx context.Context, id uint, in SubmissionInput) (*domain.Submission, error) {
	resp, err := c.send(ctx, http.MethodPut, fmt.Sprintf("%s/submissions/%d", c.baseURL, id), in)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var out domain.Submission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the submission identified by id and returns the server's
// confirmation message.
func (c *Client) Delete(ctx context.Context, id uint) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/submissions/%d", c.baseURL, id), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// send issues a JSON request with the given method and body.
func (c *Client) send(ctx context.Context, method, url string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.hc.Do(req)
}

// decodeError turns a non-2xx response into an *APIError. When the body is
// the JSON error envelope its message field is used verbatim; any other body
// (an HTML error page, say) falls back to a generic status message.
func decodeError(resp *http.Response) error {
	msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)

	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var envelope struct {
			Message string `json:"message"`
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err == nil {
			if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
				msg = envelope.Message
			}
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
