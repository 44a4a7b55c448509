// Package panel implements the typed resource layer of the admin console:
// item types for every collection the content API serves, mutation operations
// wrapping the transport collaborator, and the generic Screen engine that
// ties a polling cache subscription to an optimistically reconciled mirror
// with derived pagination and filter state.
package panel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
	"github.com/nsbbezerra/santa-maria-panel/internal/cache"
)

// Client exposes the panel API's mutation and list operations with typed
// payloads. Outgoing mutation payloads are validated before they reach the
// wire so an incomplete form never costs a round trip.
type Client struct {
	api      *api.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewClient wraps the transport client with the typed resource operations.
func NewClient(apiClient *api.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		api:      apiClient,
		validate: validator.New(),
		logger:   logger,
	}
}

// BaseURL returns the API route, used by callers to build asset URLs
// ({baseURL}/img/{name}).
func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// Fetcher adapts the client for the resource cache: every collection key is
// a deterministic GET against the base URL.
func (c *Client) Fetcher() cache.Fetcher {
	return cache.FetcherFunc(func(ctx context.Context, key string) ([]byte, error) {
		resp, err := c.api.Do(ctx, http.MethodGet, key, nil, "")
		if err != nil {
			return nil, err
		}

		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("panel: reading %s payload: %w", key, err)
		}

		return payload, nil
	})
}

// checkPayload validates a mutation payload against its struct tags.
func (c *Client) checkPayload(kind string, payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return fmt.Errorf("panel: invalid %s payload: %w", kind, err)
	}

	return nil
}

// FileUpload is a named file destined for a multipart mutation body.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// ptBRMonths are the lowercase month names the API stores alongside dated
// records, matching the browser's pt-BR long month formatting.
var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthPTBR returns the Portuguese month name for t, e.g. "março".
func MonthPTBR(t time.Time) string {
	return ptBRMonths[t.Month()-1]
}
