package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/calder-v/metascope/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RESTClient talks to an Atlan-style catalog HTTP API. Every call passes
// through a token-bucket limiter so a large enrichment run cannot hammer
// the catalog.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewRESTClient builds a client from the catalog configuration.
func NewRESTClient(cfg config.CatalogConfig, logger *zap.Logger) (*RESTClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("catalog.base_url is required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:     logger.With(zap.String("component", "catalog_client")),
	}, nil
}

// GetLineage fetches the lineage neighborhood of one entity.
func (c *RESTClient) GetLineage(ctx context.Context, req LineageRequest) (*LineageResponse, error) {
	var out LineageResponse
	if err := c.do(ctx, http.MethodPost, "/api/meta/lineage", req, &out); err != nil {
		return nil, fmt.Errorf("lineage lookup for %s: %w", req.GUID, err)
	}
	return &out, nil
}

// GetEntityByGUID fetches one entity with its relationship attributes.
func (c *RESTClient) GetEntityByGUID(ctx context.Context, guid string) (*EntityResponse, error) {
	var out EntityResponse
	if err := c.do(ctx, http.MethodGet, "/api/meta/entity/guid/"+guid, nil, &out); err != nil {
		return nil, fmt.Errorf("entity lookup for %s: %w", guid, err)
	}
	return &out, nil
}

// Search runs a catalog search and returns the raw response page.
func (c *RESTClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/meta/search", req, &out); err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	return &out, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded amount of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("Catalog request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("catalog returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
