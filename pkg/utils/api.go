package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// FetchError is returned when the upstream answers with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error fetching %s: %d", e.URL, e.StatusCode)
}

type API struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewAPI(baseURL string) *API {
	return &API{client: http.DefaultClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// WithClient swaps the underlying http.Client.
func (a *API) WithClient(client *http.Client) *API {
	if client != nil {
		a.client = client
	}
	return a
}

func (a *API) WithUserAgent(userAgent string) *API {
	a.userAgent = userAgent
	return a
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// URL joins path and params onto the base URL.
func (a *API) URL(path string, params url.Values) string {
	if params != nil {
		path += "?" + params.Encode()
	}
	return fmt.Sprintf("%s%s", a.baseURL, path)
}

// Get fetches an absolute URL and decodes the JSON body into v.
func (a *API) Get(ctx context.Context, rawURL string, v any) (int, error) {
	resp, err := a.do(ctx, rawURL, "application/json")
	if err != nil {
		return statusOf(resp), err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return resp.StatusCode, nil
}

// GetBytes fetches an absolute URL and returns the raw body.
func (a *API) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := a.do(ctx, rawURL, "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, nil
}

// do issues the request. On a non-2xx status the body is closed and the
// response is returned alongside a *FetchError.
func (a *API) do(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return resp, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
