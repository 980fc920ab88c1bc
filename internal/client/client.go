package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout    = 10 * time.Second
	customersPath     = "/customers"
	UnexpectedMessage = "unexpected error"
)

// Record is a customer as it travels over the wire.
type Record struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	State       bool   `json:"state"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// FlashMessage returns the text shown to the user for a failed call.
func FlashMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return UnexpectedMessage
}

// Client talks to the customer resource under baseURL, e.g. http://host:8080/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Create(ctx context.Context, body map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, customersPath, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, resourcePath(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Update(ctx context.Context, id string, body map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPut, resourcePath(id), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, resourcePath(id), nil, nil)
}

func (c *Client) Suspend(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPut, resourcePath(id)+"/suspend", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Search lists customers matching query, a string built by Form.SearchQuery.
func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	path := customersPath
	if query != "" {
		path += "?" + query
	}
	records := []Record{}
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func resourcePath(id string) string {
	return customersPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", res.StatusCode, err)
	}
	return nil
}
