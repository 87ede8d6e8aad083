package models

// SignalBucket is one of the five fixed market-intelligence categories.
type SignalBucket string

const (
	BucketPainPoints           SignalBucket = "pain_points"
	BucketExistingAlternatives SignalBucket = "existing_alternatives"
	BucketCommunities          SignalBucket = "communities"
	BucketDemandSignals        SignalBucket = "demand_signals"
	BucketGeneralInsight       SignalBucket = "general_insight"
)

// Competitor is a deduplicated competitor record. Identity is the canonical
// URL fingerprint; the source that discovers a fingerprint first wins.
type Competitor struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Headline        string  `json:"headline"`
	Description     string  `json:"description"`
	Source          string  `json:"source"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// MarketSignal is an informational web result assigned to exactly one
// classification bucket. Signals carry no identity and may repeat across
// buckets.
type MarketSignal struct {
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Summary         string  `json:"summary"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// MarketIntelligence holds the five signal buckets in discovery order.
type MarketIntelligence struct {
	PainPoints           []MarketSignal `json:"pain_points"`
	ExistingAlternatives []MarketSignal `json:"existing_alternatives"`
	Communities          []MarketSignal `json:"communities"`
	DemandSignals        []MarketSignal `json:"demand_signals"`
	GeneralInsight       []MarketSignal `json:"general_insight"`
}

// Add appends a signal to the named bucket. Unknown buckets fall back to
// general_insight so a signal is never dropped.
func (mi *MarketIntelligence) Add(bucket SignalBucket, sig MarketSignal) {
	switch bucket {
	case BucketPainPoints:
		mi.PainPoints = append(mi.PainPoints, sig)
	case BucketExistingAlternatives:
		mi.ExistingAlternatives = append(mi.ExistingAlternatives, sig)
	case BucketCommunities:
		mi.Communities = append(mi.Communities, sig)
	case BucketDemandSignals:
		mi.DemandSignals = append(mi.DemandSignals, sig)
	default:
		mi.GeneralInsight = append(mi.GeneralInsight, sig)
	}
}

// Total returns the number of signals across all buckets.
func (mi *MarketIntelligence) Total() int {
	return len(mi.PainPoints) + len(mi.ExistingAlternatives) +
		len(mi.Communities) + len(mi.DemandSignals) + len(mi.GeneralInsight)
}

// MarketData is the aggregated, unsummarized evidence bundle collected for
// one job.
type MarketData struct {
	ProductIdea  string             `json:"product_idea"`
	Category     string             `json:"category"`
	Competitors  []Competitor       `json:"competitors"`
	Intelligence MarketIntelligence `json:"market_intelligence"`
	SearchTrends *TrendReport       `json:"search_trends,omitempty"`
}

// TrendReport summarizes search-demand signals for the product idea.
type TrendReport struct {
	Keyword              string   `json:"keyword"`
	Trend                string   `json:"trend"`
	EstimatedResultCount int64    `json:"estimated_result_count"`
	RelatedSearches      []string `json:"related_searches"`
	PeopleAlsoAsk        []string `json:"people_also_ask"`
	Source               string   `json:"source"`
}

// Search trend classifications inferred from aggregate result counts.
const (
	TrendMainstream = "mainstream"
	TrendGrowing    = "growing"
	TrendNiche      = "niche"
)

// EvidenceSummary is the bounded projection of a bundle fed to the synthesis
// engine. It is recomputed from the bundle every time and never persisted.
type EvidenceSummary struct {
	CompetitorCount      int      `json:"competitor_count"`
	CompetitorNames      []string `json:"competitor_names"`
	PainPointCount       int      `json:"pain_point_count"`
	TopPainPoints        []string `json:"top_pain_points"`
	ExistingAlternatives []string `json:"existing_alternatives"`
	Communities          []string `json:"communities"`
	DemandSignalStrength int      `json:"demand_signal_strength"`
}
