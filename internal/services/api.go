// Raw HTTP access to the scout proxy or the upstream API
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

const userAgent = "eventscout/0.3"

// APIService makes raw HTTP requests and reports the response without interpretation.
//
// The proxy server forwards searches through it and the CLI uses it for `api get` and `api post`.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a raw client rooted at baseURL. Trailing slashes are dropped.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &APIService{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

// APIResponse is a response body with its status. JSONData is set when the body parsed as JSON.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (a *APIService) BaseURL() string {
	return a.baseURL
}

// Get requests path, which may carry its own query string.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, a.resolve(path, nil), nil)
}

// GetQuery requests path with query encoded onto it.
func (a *APIService) GetQuery(ctx context.Context, path string, query url.Values) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, a.resolve(path, query), nil)
}

// Post sends data as a JSON body.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, a.resolve(path, nil), data)
}

func (a *APIService) resolve(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	full := a.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		full += sep + encoded
	}
	return full
}

func (a *APIService) do(ctx context.Context, method, target string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	out := &APIResponse{StatusCode: resp.StatusCode, Headers: resp.Header, Body: raw}
	if err := json.Unmarshal(raw, &out.JSONData); err == nil {
		out.IsJSON = true
	} else {
		out.JSONData = nil
	}
	return out, nil
}
