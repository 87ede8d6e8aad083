package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypointhq/waypoint/internal/metrics"
)

func TestTavilySearch(t *testing.T) {
	var gotReq tavilyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "Forest App", "url": "https://forestapp.cc", "content": "Stay focused", "score": 0.93},
				{"title": "Long", "url": "https://example.com", "content": strings.Repeat("x", 5000), "score": 0.5},
			},
		})
	}))
	defer srv.Close()

	mc := metrics.NewCollector()
	client, err := NewTavilyClient("test-key", time.Second, mc)
	require.NoError(t, err)
	client.endpoint = srv.URL

	results, err := client.Search(context.Background(), "focus app competitors", 15)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "advanced", gotReq.SearchDepth)
	assert.True(t, gotReq.IncludeRawContent)
	assert.Equal(t, 15, gotReq.MaxResults)
	assert.Equal(t, "focus app competitors", gotReq.Query)

	assert.Equal(t, "Forest App", results[0].Title)
	assert.Equal(t, 0.93, results[0].Score)
	assert.Len(t, results[1].Content, tavilyMaxContentLen)

	snap := mc.Snapshot()
	assert.Equal(t, int64(1), snap.Operations[metrics.OpWebSearch].Count)
}

func TestTavilySearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	mc := metrics.NewCollector()
	client, err := NewTavilyClient("bad-key", time.Second, mc)
	require.NoError(t, err)
	client.endpoint = srv.URL

	_, err = client.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int64(1), mc.Snapshot().Operations[metrics.OpWebSearch].Failures)
}

func TestTavilyRequiresKey(t *testing.T) {
	_, err := NewTavilyClient("", time.Second, nil)
	assert.Error(t, err)
}

func TestTavilySource(t *testing.T) {
	client, err := NewTavilyClient("key", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "tavily", client.Source())
}
