package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const userAgent = "santa-maria-panel/0.1"

// MutationResult is the success body every mutation endpoint returns: a
// human-readable message and, for create-style endpoints, the id the server
// assigned to the new resource.
type MutationResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client is an HTTP client for the panel content API. All requests are
// resolved against a single base URL fixed at construction — there is no
// ambient global route state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// newRequestID generates the X-Request-ID header value for log
	// correlation. Tests override this for stable output.
	newRequestID func() string
}

// NewClient creates a panel API client. baseURL is the configured API route,
// without a trailing slash.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		logger:       logger,
		newRequestID: uuid.NewString,
	}
}

// BaseURL returns the configured API route. Screens use it to build asset
// URLs (images served from {baseURL}/img/{name}).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes a single HTTP request against the API. The path is appended to
// the client's base URL. Transport failures return *TransportError; non-2xx
// responses are decoded into *APIError with the server's message fields.
// On success the caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	reqID := c.newRequestID()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("User-Agent", userAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("api: request canceled: %w", ctx.Err())
		}

		c.logger.Warn("request could not complete",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", reqID),
			slog.String("error", err.Error()),
		)

		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", reqID),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	defer resp.Body.Close()

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  reqID,
		Err:        classifyStatus(resp.StatusCode),
	}

	// The API reports failures as {"message": ..., "errorMessage": ...}.
	// A body that fails to decode still yields a usable APIError.
	var errBody struct {
		Message      string `json:"message"`
		ErrorMessage string `json:"errorMessage"`
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
		apiErr.Message = errBody.Message
		apiErr.ErrorMessage = errBody.ErrorMessage
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	c.logger.Warn("request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", reqID),
		slog.Int("status", resp.StatusCode),
		slog.String("message", apiErr.Message),
	)

	return nil, apiErr
}

// GetJSON issues a GET and decodes the JSON response body into v.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("api: decoding GET %s response: %w", path, err)
	}

	return nil
}

// PostJSON issues a POST with a JSON body and decodes the mutation result.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (MutationResult, error) {
	return c.mutateJSON(ctx, http.MethodPost, path, payload)
}

// PutJSON issues a PUT with a JSON body and decodes the mutation result.
func (c *Client) PutJSON(ctx context.Context, path string, payload any) (MutationResult, error) {
	return c.mutateJSON(ctx, http.MethodPut, path, payload)
}

// Delete issues a DELETE and decodes the mutation result.
func (c *Client) Delete(ctx context.Context, path string) (MutationResult, error) {
	resp, err := c.Do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return MutationResult{}, err
	}

	return decodeMutationResult(resp, path)
}

// PostMultipart issues a POST with a multipart form body.
func (c *Client) PostMultipart(ctx context.Context, path string, form *Form) (MutationResult, error) {
	return c.mutateMultipart(ctx, http.MethodPost, path, form)
}

// PutMultipart issues a PUT with a multipart form body.
func (c *Client) PutMultipart(ctx context.Context, path string, form *Form) (MutationResult, error) {
	return c.mutateMultipart(ctx, http.MethodPut, path, form)
}

func (c *Client) mutateJSON(ctx context.Context, method, path string, payload any) (MutationResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return MutationResult{}, fmt.Errorf("api: encoding %s %s body: %w", method, path, err)
	}

	resp, err := c.Do(ctx, method, path, bytes.NewReader(body), "application/json")
	if err != nil {
		return MutationResult{}, err
	}

	return decodeMutationResult(resp, path)
}

func (c *Client) mutateMultipart(ctx context.Context, method, path string, form *Form) (MutationResult, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return MutationResult{}, fmt.Errorf("api: encoding %s %s form: %w", method, path, err)
	}

	resp, err := c.Do(ctx, method, path, body, contentType)
	if err != nil {
		return MutationResult{}, err
	}

	return decodeMutationResult(resp, path)
}

func decodeMutationResult(resp *http.Response, path string) (MutationResult, error) {
	defer resp.Body.Close()

	var result MutationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return MutationResult{}, fmt.Errorf("api: decoding %s mutation result: %w", path, err)
	}

	return result, nil
}
