package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/waypointhq/waypoint/internal/evidence"
	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

const (
	// SerpAPIEndpoint is the SerpAPI Google search endpoint.
	SerpAPIEndpoint = "https://serpapi.com/search.json"

	// serpResultsPerQuery is how many organic results to request per query.
	serpResultsPerQuery = 10

	// serpMaxRelated caps the related searches and questions carried in
	// the aggregated report.
	serpMaxRelated = 10

	// DefaultTrendQueryDelay spaces consecutive SerpAPI calls to stay
	// under rate limits.
	DefaultTrendQueryDelay = 2 * time.Second

	// Aggregate result-count thresholds for trend classification.
	mainstreamThreshold = 1_000_000
	growingThreshold    = 100_000
)

// ErrNoTrendData indicates that none of the generated queries returned
// usable data from SerpAPI.
var ErrNoTrendData = errors.New("no usable data returned from SerpAPI")

// SerpTrendsClient implements evidence.TrendAnalyzer by running a small
// set of generated Google queries through SerpAPI and aggregating the
// demand signals.
type SerpTrendsClient struct {
	apiKey     string
	endpoint   string
	client     *http.Client
	queryDelay time.Duration
	metrics    *metrics.Collector

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSerpTrendsClient creates a SerpAPI trend analysis client. A zero
// queryDelay uses DefaultTrendQueryDelay.
func NewSerpTrendsClient(apiKey string, queryDelay time.Duration, mc *metrics.Collector) (*SerpTrendsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for SerpAPI trends")
	}
	if queryDelay == 0 {
		queryDelay = DefaultTrendQueryDelay
	}

	return &SerpTrendsClient{
		apiKey:     apiKey,
		endpoint:   SerpAPIEndpoint,
		client:     &http.Client{Timeout: 20 * time.Second},
		queryDelay: queryDelay,
		metrics:    mc,
		sleep:      sleepCtx,
	}, nil
}

// serpResultCount decodes total_results, which SerpAPI returns either as
// a number or as a comma-grouped string.
type serpResultCount int64

func (n *serpResultCount) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = serpResultCount(num)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("total_results is neither number nor string: %s", data)
	}
	num, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return fmt.Errorf("parse total_results %q: %w", s, err)
	}
	*n = serpResultCount(num)
	return nil
}

// serpResponse is the subset of a SerpAPI Google response we consume.
type serpResponse struct {
	Error             string `json:"error"`
	SearchInformation struct {
		TotalResults serpResultCount `json:"total_results"`
	} `json:"search_information"`
	RelatedQuestions []struct {
		Question string `json:"question"`
	} `json:"related_questions"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"related_searches"`
}

// querySignals holds the demand signals extracted from a single query.
type querySignals struct {
	resultCount     int64
	peopleAlsoAsk   []string
	relatedSearches []string
}

// AnalyzeKeyword generates search queries for the product idea, runs each
// through SerpAPI with a fixed delay between calls, and aggregates the
// signals into a trend classification.
func (c *SerpTrendsClient) AnalyzeKeyword(ctx context.Context, input string) (*models.TrendReport, error) {
	queries := evidence.GenerateQueries(input)

	var collected []querySignals
	for i, query := range queries {
		signals, err := c.runQuery(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.metrics.RecordFailure(metrics.OpTrendSearch)
			continue
		}
		collected = append(collected, signals)

		if i < len(queries)-1 {
			if err := c.sleep(ctx, c.queryDelay); err != nil {
				return nil, err
			}
		}
	}

	if len(collected) == 0 {
		return nil, ErrNoTrendData
	}

	var total int64
	var questions, related []string
	seenQ := make(map[string]bool)
	seenR := make(map[string]bool)
	for _, s := range collected {
		total += s.resultCount
		for _, q := range s.peopleAlsoAsk {
			if !seenQ[q] {
				seenQ[q] = true
				questions = append(questions, q)
			}
		}
		for _, r := range s.relatedSearches {
			if !seenR[r] {
				seenR[r] = true
				related = append(related, r)
			}
		}
	}

	return &models.TrendReport{
		Keyword:              input,
		Trend:                classifyTrend(total),
		EstimatedResultCount: total,
		RelatedSearches:      capStrings(related, serpMaxRelated),
		PeopleAlsoAsk:        capStrings(questions, serpMaxRelated),
		Source:               "serpapi",
	}, nil
}

func (c *SerpTrendsClient) runQuery(ctx context.Context, query string) (querySignals, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(serpResultsPerQuery))

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return querySignals{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return querySignals{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return querySignals{}, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var serpResp serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&serpResp); err != nil {
		return querySignals{}, fmt.Errorf("decode response: %w", err)
	}
	if serpResp.Error != "" {
		return querySignals{}, fmt.Errorf("serpapi error: %s", serpResp.Error)
	}

	signals := querySignals{resultCount: int64(serpResp.SearchInformation.TotalResults)}
	for _, item := range serpResp.RelatedQuestions {
		if item.Question != "" {
			signals.peopleAlsoAsk = append(signals.peopleAlsoAsk, item.Question)
		}
	}
	for _, item := range serpResp.RelatedSearches {
		if item.Query != "" {
			signals.relatedSearches = append(signals.relatedSearches, item.Query)
		}
	}

	c.metrics.RecordTiming(metrics.OpTrendSearch, time.Since(start))
	return signals, nil
}

// classifyTrend maps an aggregate result count to a demand tier.
func classifyTrend(total int64) string {
	switch {
	case total > mainstreamThreshold:
		return models.TrendMainstream
	case total > growingThreshold:
		return models.TrendGrowing
	default:
		return models.TrendNiche
	}
}

func capStrings(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
