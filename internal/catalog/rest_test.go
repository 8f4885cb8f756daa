package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calder-v/metascope/internal/config"
)

func testClientConfig(baseURL string) config.CatalogConfig {
	return config.CatalogConfig{
		BaseURL:   baseURL,
		APIToken:  "test-token",
		Timeout:   5 * time.Second,
		RateLimit: 1000,
		RateBurst: 1000,
	}
}

func TestNewRESTClient_Validation(t *testing.T) {
	_, err := NewRESTClient(config.CatalogConfig{}, zap.NewNop())
	assert.Error(t, err, "base URL is required")

	_, err = NewRESTClient(testClientConfig("http://catalog.local"), nil)
	assert.Error(t, err, "logger is required")
}

func TestRESTClient_GetLineage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/meta/lineage", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LineageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "t-1", req.GUID)
		assert.Equal(t, DirectionBoth, req.Direction)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"upstream": {"edges": [{"fromGuid": "up-1", "toGuid": "t-1"}]},
			"downstream": {"edges": []}
		}`))
	}))
	defer server.Close()

	client, err := NewRESTClient(testClientConfig(server.URL), zap.NewNop())
	require.NoError(t, err)

	resp, err := client.GetLineage(context.Background(), LineageRequest{
		GUID: "t-1", Depth: 1, Direction: DirectionBoth,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Upstream.Edges, 1)
	assert.Empty(t, resp.Downstream.Edges)
}

func TestRESTClient_GetEntityByGUID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/meta/entity/guid/t-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"entity": {
				"guid": "t-1",
				"typeName": "Table",
				"attributes": {"name": "orders"},
				"relationshipAttributes": {"readme": {"guid": "r-1"}}
			}
		}`))
	}))
	defer server.Close()

	client, err := NewRESTClient(testClientConfig(server.URL), zap.NewNop())
	require.NoError(t, err)

	resp, err := client.GetEntityByGUID(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", resp.Entity.GUID)
	assert.Equal(t, "Table", resp.Entity.TypeName)
	assert.NotNil(t, resp.Entity.RelationshipAttributes["readme"])
}

func TestRESTClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/meta/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entities": [{"guid": "t-1", "typeName": "Table"}], "approximateCount": 1}`))
	}))
	defer server.Close()

	client, err := NewRESTClient(testClientConfig(server.URL), zap.NewNop())
	require.NoError(t, err)

	resp, err := client.Search(context.Background(), SearchRequest{TypeNames: []string{"Table"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entities, 1)
	assert.Equal(t, int64(1), resp.ApproximateCount)
}

func TestRESTClient_ErrorStatusIncludesSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "token expired"}`))
	}))
	defer server.Close()

	client, err := NewRESTClient(testClientConfig(server.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = client.GetEntityByGUID(context.Background(), "t-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "token expired")
}

func TestRESTClient_NoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entity": {"guid": "t-1"}}`))
	}))
	defer server.Close()

	cfg := testClientConfig(server.URL)
	cfg.APIToken = ""
	client, err := NewRESTClient(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = client.GetEntityByGUID(context.Background(), "t-1")
	require.NoError(t, err)
}
