// Package search provides adapters for the external search and discovery
// APIs that feed evidence collection: Tavily web search, Product Hunt
// product discovery, and SerpAPI search-demand analysis.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

const (
	// TavilyEndpoint is the Tavily search API endpoint.
	TavilyEndpoint = "https://api.tavily.com/search"

	// tavilyMaxContentLen caps the content carried per result. Raw pages
	// can be very large and only the lead matters downstream.
	tavilyMaxContentLen = 2000
)

// TavilyClient implements evidence.WebSearcher against the Tavily API.
type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	metrics  *metrics.Collector
}

// NewTavilyClient creates a Tavily search client.
func NewTavilyClient(apiKey string, timeout time.Duration, mc *metrics.Collector) (*TavilyClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for Tavily search")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: TavilyEndpoint,
		client:   &http.Client{Timeout: timeout},
		metrics:  mc,
	}, nil
}

// Source identifies results from this adapter.
func (c *TavilyClient) Source() string {
	return "tavily"
}

// tavilyRequest is the request format for the Tavily search API.
type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

// tavilyResponse is the response format from the Tavily search API.
type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs an advanced-depth Tavily search and returns normalized
// results with content truncated to a bounded length.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	start := time.Now()

	results, err := c.search(ctx, query, maxResults)
	if err != nil {
		c.metrics.RecordFailure(metrics.OpWebSearch)
		return nil, err
	}
	c.metrics.RecordTiming(metrics.OpWebSearch, time.Since(start))
	return results, nil
}

func (c *TavilyClient) search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	reqBody := tavilyRequest{
		APIKey:            c.apiKey,
		Query:             query,
		SearchDepth:       "advanced",
		MaxResults:        maxResults,
		IncludeRawContent: true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily API error (status %d): %s", resp.StatusCode, string(body))
	}

	var tavilyResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tavilyResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(tavilyResp.Results))
	for _, item := range tavilyResp.Results {
		results = append(results, models.SearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Content: truncateRunes(item.Content, tavilyMaxContentLen),
			Score:   item.Score,
		})
	}

	return results, nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
