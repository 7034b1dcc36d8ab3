package creditapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"RodaClientPortal/internal/config"
)

// APIError is returned for any non-2xx upstream response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("credit api: HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("credit api: HTTP %d", e.Status)
}

// Client talks to the upstream credit-servicing REST API. All business
// logic (loan computation, payment matching, arrears) lives upstream; this
// client only fetches and decodes.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("CREDIT_API_URL")
	}
	if baseURL == "" {
		baseURL = config.DefaultCreditAPIURL
	}
	// Base must carry the /api segment exactly once
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL += "/api"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins the base with an endpoint path and query values.
func (c *Client) buildURL(endpoint string, params url.Values) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	full := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	return full
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint, params), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("credit api: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{Status: resp.StatusCode, Body: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("credit api: decode %s: %w", endpoint, err)
	}
	return nil
}
