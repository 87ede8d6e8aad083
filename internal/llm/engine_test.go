package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

// fakeGen returns a canned response and records the prompt it was given.
type fakeGen struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func newTestEngine(gen *fakeGen) *Engine {
	return &Engine{gen: gen, metrics: metrics.NewCollector()}
}

const validBaseJSON = `{
  "category_diagnosis": {
    "assumed_category": "productivity app",
    "recommended_category": "ADHD support tool",
    "should_reframe": true,
    "confidence": 0.85,
    "reasoning": "Competitors cluster around accessibility, not generic productivity."
  },
  "market_timing": {"stage": "growing", "justification": "Rising search demand."},
  "competitive_landscape": {
    "intensity": "medium",
    "patterns_observed": ["gamified focus timers"],
    "opportunity_gaps": ["body-doubling features"]
  },
  "strategy": {
    "mvp_feature_priorities": ["focus sessions"],
    "distribution_channels": ["reddit"],
    "pricing_recommendation": {
      "model": "freemium",
      "expected_range": "$5-10/mo",
      "rationale": "Matches competitor pricing."
    },
    "messaging_templates": ["Built for ADHD brains"]
  },
  "overall_confidence": 0.8
}`

func TestGenerateStructuredStripsFences(t *testing.T) {
	gen := &fakeGen{response: "```json\n{\"verdict\": \"ok\"}\n```"}
	e := newTestEngine(gen)

	obj, err := e.GenerateStructured(context.Background(), "analyze", Shape{{Name: "verdict", Kind: KindString}})
	require.NoError(t, err)
	assert.Equal(t, "ok", obj["verdict"])

	assert.Contains(t, gen.prompt, "analyze")
	assert.Contains(t, gen.prompt, "ONLY valid JSON")
	assert.Contains(t, gen.prompt, `"verdict": "string"`)
}

func TestGenerateStructuredUnparsable(t *testing.T) {
	e := newTestEngine(&fakeGen{response: "Sure! Here is my analysis: the market looks great."})

	_, err := e.GenerateStructured(context.Background(), "analyze", Shape{{Name: "verdict", Kind: KindString}})
	assert.ErrorIs(t, err, ErrUnparsableOutput)
	assert.Equal(t, int64(1), e.metrics.Snapshot().Operations[metrics.OpLLMGenerate].Failures)
}

func TestGenerateStructuredSchemaMismatch(t *testing.T) {
	e := newTestEngine(&fakeGen{response: `{"other": 1}`})

	_, err := e.GenerateStructured(context.Background(), "analyze", Shape{{Name: "verdict", Kind: KindString}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestGenerateStructuredModelError(t *testing.T) {
	e := newTestEngine(&fakeGen{err: errors.New("rate limited")})

	_, err := e.GenerateStructured(context.Background(), "analyze", Shape{{Name: "verdict", Kind: KindString}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAnalyzeBase(t *testing.T) {
	gen := &fakeGen{response: validBaseJSON}
	e := newTestEngine(gen)

	evidence := models.EvidenceSummary{
		CompetitorCount: 3,
		CompetitorNames: []string{"Forest", "Focusmate", "Freedom"},
		TopPainPoints:   []string{"Too many notifications"},
	}

	base, err := e.AnalyzeBase(context.Background(), "a focus app for ADHD", models.TierPrelaunch, evidence)
	require.NoError(t, err)

	assert.True(t, base.CategoryDiagnosis.ShouldReframe)
	assert.Equal(t, "ADHD support tool", base.CategoryDiagnosis.RecommendedCategory)
	assert.Equal(t, "growing", base.MarketTiming.Stage)
	assert.Equal(t, "freemium", base.Strategy.PricingRecommendation.Model)
	assert.Equal(t, 0.8, base.OverallConfidence)

	assert.Contains(t, gen.prompt, "PRELAUNCH")
	assert.Contains(t, gen.prompt, "a focus app for ADHD")
	assert.Contains(t, gen.prompt, "Forest, Focusmate, Freedom")
	assert.Contains(t, gen.prompt, "Too many notifications")
}

func TestExpandDashboard(t *testing.T) {
	gen := &fakeGen{response: `{
		"category_diagnosis": "You should REFRAME to ADHD support.",
		"overview": "o", "market_reality": "m", "competitive_landscape": "c",
		"user_pain_and_desires": "u", "strategy_and_positioning": "s",
		"mvp_blueprint": "b", "pricing_and_monetization": "p",
		"go_to_market": "g", "risks_and_unknowns": "r"
	}`}
	e := newTestEngine(gen)

	data := &models.MarketData{ProductIdea: "a focus app for ADHD"}
	base := &models.BaseAnalysis{}

	dashboard, err := e.ExpandDashboard(context.Background(), data, base)
	require.NoError(t, err)
	assert.Equal(t, "You should REFRAME to ADHD support.", dashboard.CategoryDiagnosis)
	assert.Equal(t, "g", dashboard.GoToMarket)

	assert.Contains(t, gen.prompt, "a focus app for ADHD")
	assert.Contains(t, gen.prompt, "DASHBOARD SECTIONS TO CREATE")
}

func TestExpandDashboardCategoryFallback(t *testing.T) {
	gen := &fakeGen{response: `{
		"category_diagnosis": "  ",
		"overview": "o", "market_reality": "m", "competitive_landscape": "c",
		"user_pain_and_desires": "u", "strategy_and_positioning": "s",
		"mvp_blueprint": "b", "pricing_and_monetization": "p",
		"go_to_market": "g", "risks_and_unknowns": "r"
	}`}
	e := newTestEngine(gen)

	base := &models.BaseAnalysis{
		CategoryDiagnosis: models.CategoryDiagnosis{
			AssumedCategory:     "productivity app",
			RecommendedCategory: "ADHD support tool",
			ShouldReframe:       true,
			Confidence:          0.85,
			Reasoning:           "Competitors cluster around accessibility.",
		},
	}

	dashboard, err := e.ExpandDashboard(context.Background(), &models.MarketData{}, base)
	require.NoError(t, err)

	assert.Contains(t, dashboard.CategoryDiagnosis, "REFRAME from 'productivity app' to 'ADHD support tool'")
	assert.Contains(t, dashboard.CategoryDiagnosis, "Confidence Level:** 85%")
	assert.Contains(t, dashboard.CategoryDiagnosis, "Competitors cluster around accessibility.")
}

func TestFallbackCategoryDiagnosisDefaults(t *testing.T) {
	out := fallbackCategoryDiagnosis(models.CategoryDiagnosis{})
	assert.Contains(t, out, "right category: 'your current category'")
	assert.Contains(t, out, "Confidence Level:** 70%")
}
