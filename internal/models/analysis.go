package models

// CategoryDiagnosis is the synthesis engine's verdict on whether the idea is
// positioned in the right market category.
type CategoryDiagnosis struct {
	AssumedCategory     string  `json:"assumed_category"`
	RecommendedCategory string  `json:"recommended_category"`
	ShouldReframe       bool    `json:"should_reframe"`
	Confidence          float64 `json:"confidence"`
	Reasoning           string  `json:"reasoning"`
}

// MarketTiming describes the detected market stage.
type MarketTiming struct {
	Stage         string `json:"stage"`
	Justification string `json:"justification"`
}

// CompetitiveLandscape summarizes observed competition.
type CompetitiveLandscape struct {
	Intensity        string   `json:"intensity"`
	PatternsObserved []string `json:"patterns_observed"`
	OpportunityGaps  []string `json:"opportunity_gaps"`
}

// PricingRecommendation is the suggested monetization model.
type PricingRecommendation struct {
	Model         string `json:"model"`
	ExpectedRange string `json:"expected_range"`
	Rationale     string `json:"rationale"`
}

// Strategy holds the actionable recommendations of the base analysis.
type Strategy struct {
	MVPFeaturePriorities  []string              `json:"mvp_feature_priorities"`
	DistributionChannels  []string              `json:"distribution_channels"`
	PricingRecommendation PricingRecommendation `json:"pricing_recommendation"`
	MessagingTemplates    []string              `json:"messaging_templates"`
}

// BaseAnalysis is the first-stage structured synthesis result.
type BaseAnalysis struct {
	CategoryDiagnosis    CategoryDiagnosis    `json:"category_diagnosis"`
	MarketTiming         MarketTiming         `json:"market_timing"`
	CompetitiveLandscape CompetitiveLandscape `json:"competitive_landscape"`
	Strategy             Strategy             `json:"strategy"`
	OverallConfidence    float64              `json:"overall_confidence"`
}

// DashboardAnalysis is the second-stage synthesis result: ten narrative
// sections expanded from the base analysis plus the raw evidence bundle.
type DashboardAnalysis struct {
	CategoryDiagnosis      string `json:"category_diagnosis"`
	Overview               string `json:"overview"`
	MarketReality          string `json:"market_reality"`
	CompetitiveLandscape   string `json:"competitive_landscape"`
	UserPainAndDesires     string `json:"user_pain_and_desires"`
	StrategyAndPositioning string `json:"strategy_and_positioning"`
	MVPBlueprint           string `json:"mvp_blueprint"`
	PricingAndMonetization string `json:"pricing_and_monetization"`
	GoToMarket             string `json:"go_to_market"`
	RisksAndUnknowns       string `json:"risks_and_unknowns"`
}
