package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypointhq/waypoint/internal/metrics"
)

func phPostsResponse() map[string]any {
	node := func(name, tagline, website, url string, votes int, topics ...string) map[string]any {
		topicEdges := make([]map[string]any, 0, len(topics))
		for _, t := range topics {
			topicEdges = append(topicEdges, map[string]any{"node": map[string]any{"name": t}})
		}
		return map[string]any{"node": map[string]any{
			"name":       name,
			"tagline":    tagline,
			"website":    website,
			"url":        url,
			"votesCount": votes,
			"topics":     map[string]any{"edges": topicEdges},
		}}
	}

	return map[string]any{
		"data": map[string]any{
			"posts": map[string]any{
				"edges": []map[string]any{
					node("Notion", "All-in-one workspace", "https://notion.so", "https://producthunt.com/posts/notion", 5000, "Productivity"),
					node("Linear", "Issue tracking", "https://linear.app", "https://producthunt.com/posts/linear", 3000, "Productivity", "Developer Tools"),
				},
			},
		},
	}
}

func TestProductHuntSearchByTopic(t *testing.T) {
	var gotReq graphqlRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, productHuntUserAgent, r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(phPostsResponse())
	}))
	defer srv.Close()

	mc := metrics.NewCollector()
	client, err := NewProductHuntClient("test-token", mc)
	require.NoError(t, err)
	client.endpoint = srv.URL

	products, err := client.SearchByTopic(context.Background(), "productivity", 20)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "productivity", gotReq.Variables["topic"])
	assert.Equal(t, float64(20), gotReq.Variables["limit"])
	assert.Contains(t, gotReq.Query, "order: RANKING")

	assert.Equal(t, "Notion", products[0].Name)
	assert.Equal(t, 5000, products[0].Votes)
	assert.Equal(t, "https://producthunt.com/posts/linear", products[1].PostURL)
	assert.Equal(t, []string{"Productivity", "Developer Tools"}, products[1].Topics)

	assert.Equal(t, int64(1), mc.Snapshot().Operations[metrics.OpProductDiscovery].Count)
}

func TestProductHuntGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "rate limit exceeded"}},
		})
	}))
	defer srv.Close()

	mc := metrics.NewCollector()
	client, err := NewProductHuntClient("test-token", mc)
	require.NoError(t, err)
	client.endpoint = srv.URL

	_, err = client.SearchByTopic(context.Background(), "ai", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Equal(t, int64(1), mc.Snapshot().Operations[metrics.OpProductDiscovery].Failures)
}

func TestProductHuntRequiresToken(t *testing.T) {
	_, err := NewProductHuntClient("", nil)
	assert.Error(t, err)
}
