package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kaushalkahapola/smart-campus/src/config"
)

// TokenSource yields the current bearer token, or "" when there is none. The
// session manager implements it; reads may race a concurrent sign-in, which
// only decides whether an in-flight request carries the old or the new token.
type TokenSource interface {
	Token() string
}

type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client is the single point of outbound HTTP traffic. It attaches
// credentials and classifies responses; it never redirects, retries or
// touches session state.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: config.GetRequestTimeout()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, "", out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	r, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, r, "application/json", out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	r, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, endpoint, r, "application/json", out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, "", out)
}

// GetRaw fetches an endpoint without decoding, returning the body and its
// content type. Used for analytics exports (csv/pdf downloads).
func (c *Client) GetRaw(ctx context.Context, endpoint string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, "", err
	}
	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", networkError(err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", networkError(err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		message, code := errorBody(res.Header.Get("Content-Type"), data)
		return nil, "", newStatusError(res.StatusCode, message, code)
	}
	return data, res.Header.Get("Content-Type"), nil
}

// Upload posts a single file as multipart form data. The multipart writer
// owns the Content-Type header here.
func (c *Client) Upload(ctx context.Context, endpoint, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, &buf, mw.FormDataContentType(), out)
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, endpoint, body, contentType)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return networkError(err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return networkError(err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		message, code := errorBody(res.Header.Get("Content-Type"), data)
		return newStatusError(res.StatusCode, message, code)
	}
	if out == nil || len(data) == 0 || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Status: res.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	return nil
}

// errorBody pulls {message, code} out of a JSON error response. Non-JSON
// bodies are used verbatim as the message.
func errorBody(contentType string, data []byte) (string, string) {
	if strings.Contains(contentType, "application/json") {
		var parsed struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if err := json.Unmarshal(data, &parsed); err == nil {
			return parsed.Message, parsed.Code
		}
	}
	return strings.TrimSpace(string(data)), ""
}
