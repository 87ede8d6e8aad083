package evidence

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/waypointhq/waypoint/internal/models"
)

// WebSearcher is a general-purpose search adapter. Transport failures are
// returned as errors; the collector treats them as an empty result set.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
	Source() string
}

// ProductDiscoverer is a topic-keyed product discovery adapter.
type ProductDiscoverer interface {
	SearchByTopic(ctx context.Context, topic string, limit int) ([]models.Product, error)
	Source() string
}

// TrendAnalyzer infers search-demand signals for a product idea.
type TrendAnalyzer interface {
	AnalyzeKeyword(ctx context.Context, input string) (*models.TrendReport, error)
}

// Result volume and field caps for the collection phases.
const (
	maxCompetitorResults  = 15
	maxProductResults     = 20
	maxPainResults        = 8
	maxCommunityResults   = 5
	maxAlternativeResults = 8

	maxDescriptionLen = 500
	maxSummaryLen     = 300

	defaultCompetitorConfidence = 0.7
	defaultSignalConfidence     = 0.5
	productConfidence           = 0.9
)

// Query suffixes appended to the idea for the market-intelligence phase.
const (
	competitorQuerySuffix  = " competitors alternatives similar products tools"
	painQuerySuffix        = " problems pain points complaints issues challenges"
	communityQuerySuffix   = " community forum reddit discord slack groups"
	alternativeQuerySuffix = " alternatives solutions tools software"
)

// Collector assembles a market-evidence bundle from heterogeneous sources.
// Any adapter may be nil or fail; a missing source only reduces evidence
// volume, it never aborts collection.
type Collector struct {
	web      WebSearcher
	products ProductDiscoverer
	trends   TrendAnalyzer
	logger   *slog.Logger
}

// NewCollector wires the collector's search sources. trends may be nil to
// skip trend enrichment.
func NewCollector(web WebSearcher, products ProductDiscoverer, trends TrendAnalyzer, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{web: web, products: products, trends: trends, logger: logger}
}

// Collect runs the ordered collection phases and returns the assembled
// bundle: primary competitor discovery, secondary competitor discovery with
// fingerprint dedup, market-intelligence queries, and trend enrichment.
func (c *Collector) Collect(ctx context.Context, productIdea string) *models.MarketData {
	data := &models.MarketData{
		ProductIdea: productIdea,
		Category:    "Unknown",
		Competitors: []models.Competitor{},
	}
	seen := make(map[string]struct{})

	c.logger.Info("collecting market data", "idea", productIdea)

	// Phase 1: primary competitor discovery.
	for _, r := range c.search(ctx, productIdea+competitorQuerySuffix, maxCompetitorResults) {
		fp := Fingerprint(r.URL)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		data.Competitors = append(data.Competitors, models.Competitor{
			Name:            ExtractCompanyName(r.Title),
			URL:             r.URL,
			Headline:        r.Title,
			Description:     truncate(r.Content, maxDescriptionLen),
			Source:          c.webSource(),
			ConfidenceScore: confidence(r.Score, defaultCompetitorConfidence),
		})
	}
	c.logger.Info("competitor discovery complete", "source", c.webSource(), "competitors", len(data.Competitors))

	// Phase 2: secondary competitor discovery. Fingerprints already claimed
	// by phase 1 are skipped so the first source wins.
	if c.products != nil {
		products, err := c.products.SearchByTopic(ctx, productIdea, maxProductResults)
		if err != nil {
			c.logger.Warn("product discovery failed, continuing without it",
				"source", c.products.Source(), "error", err)
			products = nil
		}
		added := 0
		for _, p := range products {
			if p.Website == "" {
				continue
			}
			fp := Fingerprint(p.Website)
			if _, dup := seen[fp]; dup {
				continue
			}
			seen[fp] = struct{}{}
			data.Competitors = append(data.Competitors, models.Competitor{
				Name:            p.Name,
				URL:             p.Website,
				Headline:        p.Tagline,
				Description:     truncate(p.Description, maxDescriptionLen),
				Source:          c.products.Source(),
				ConfidenceScore: productConfidence,
			})
			added++
		}
		c.logger.Info("product discovery complete", "source", c.products.Source(), "added", added)
	}

	// Phase 3: market intelligence. Pain-point and alternative queries map
	// to fixed buckets; the community query is routed through the classifier.
	for _, r := range c.search(ctx, productIdea+painQuerySuffix, maxPainResults) {
		data.Intelligence.Add(models.BucketPainPoints, signalFrom(r))
	}
	for _, r := range c.search(ctx, productIdea+communityQuerySuffix, maxCommunityResults) {
		data.Intelligence.Add(Classify(r.URL, r.Content), signalFrom(r))
	}
	for _, r := range c.search(ctx, productIdea+alternativeQuerySuffix, maxAlternativeResults) {
		// A known competitor never doubles as an alternative.
		if _, isCompetitor := seen[Fingerprint(r.URL)]; isCompetitor {
			continue
		}
		data.Intelligence.Add(models.BucketExistingAlternatives, signalFrom(r))
	}

	// Phase 4: search-trend enrichment.
	if c.trends != nil {
		report, err := c.trends.AnalyzeKeyword(ctx, productIdea)
		if err != nil {
			c.logger.Warn("trend analysis failed, continuing without it", "error", err)
		} else {
			data.SearchTrends = report
		}
	}

	c.logger.Info("market data collection complete",
		"competitors", len(data.Competitors),
		"pain_points", len(data.Intelligence.PainPoints),
		"communities", len(data.Intelligence.Communities),
		"alternatives", len(data.Intelligence.ExistingAlternatives),
		"demand_signals", len(data.Intelligence.DemandSignals),
		"total_signals", data.Intelligence.Total(),
	)
	return data
}

// search runs one web query, degrading transport failures to an empty slice.
func (c *Collector) search(ctx context.Context, query string, maxResults int) []models.SearchResult {
	if c.web == nil {
		return nil
	}
	results, err := c.web.Search(ctx, query, maxResults)
	if err != nil {
		c.logger.Warn("web search failed, continuing with empty results",
			"source", c.web.Source(), "query", query, "error", err)
		return nil
	}
	return results
}

func (c *Collector) webSource() string {
	if c.web == nil {
		return ""
	}
	return c.web.Source()
}

func signalFrom(r models.SearchResult) models.MarketSignal {
	return models.MarketSignal{
		Title:           r.Title,
		URL:             r.URL,
		Summary:         truncate(r.Content, maxSummaryLen),
		ConfidenceScore: confidence(r.Score, defaultSignalConfidence),
	}
}

// ExtractCompanyName derives a display name from a search result title:
// known suffixes are stripped, the title is split on " - " or "|" separators,
// and otherwise the first five words are taken.
func ExtractCompanyName(title string) string {
	title = strings.ReplaceAll(title, " - Official Site", "")
	title = strings.ReplaceAll(title, " | ", " - ")

	if strings.Contains(title, " - ") {
		return strings.TrimSpace(strings.SplitN(title, " - ", 2)[0])
	}
	if strings.Contains(title, "|") {
		return strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	}

	words := strings.Fields(title)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

// confidence rounds an adapter score to two decimals, substituting the
// fallback when the adapter reported none.
func confidence(score, fallback float64) float64 {
	if score == 0 {
		score = fallback
	}
	return math.Round(score*100) / 100
}

// truncate caps s at n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
