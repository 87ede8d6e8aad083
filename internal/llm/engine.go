package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

var (
	// ErrUnparsableOutput indicates the model response was not valid JSON
	// even after markdown-fence cleanup.
	ErrUnparsableOutput = errors.New("model output is not valid JSON")

	// ErrSchemaMismatch indicates valid JSON that does not match the
	// requested shape.
	ErrSchemaMismatch = errors.New("model output does not match schema")
)

// generator is the minimal text-generation surface the engine needs.
// *Model satisfies it; tests substitute a canned fake.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine runs the two-stage structured synthesis: a base strategic
// analysis from the evidence summary, then its expansion into narrative
// dashboard sections.
type Engine struct {
	gen     generator
	metrics *metrics.Collector
}

// NewEngine creates a synthesis engine on top of a model.
func NewEngine(model *Model, mc *metrics.Collector) *Engine {
	return &Engine{gen: model, metrics: mc}
}

// GenerateStructured prompts the model for strict JSON matching shape and
// returns the decoded object.
func (e *Engine) GenerateStructured(ctx context.Context, prompt string, shape Shape) (map[string]any, error) {
	start := time.Now()

	obj, err := e.generateStructured(ctx, prompt, shape)
	if err != nil {
		e.metrics.RecordFailure(metrics.OpLLMGenerate)
		return nil, err
	}
	e.metrics.RecordTiming(metrics.OpLLMGenerate, time.Since(start))
	return obj, nil
}

func (e *Engine) generateStructured(ctx context.Context, prompt string, shape Shape) (map[string]any, error) {
	fullPrompt := fmt.Sprintf(`%s

You MUST respond with ONLY valid JSON.
The JSON MUST strictly match this schema:
%s

Rules:
- No markdown
- No explanations
- No comments
- No text outside JSON`, prompt, shape.Render())

	raw, err := e.gen.Generate(ctx, fullPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate structured: %w", err)
	}

	// Models occasionally wrap the payload in a markdown fence despite
	// the instructions.
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}

	if err := shape.Validate(obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	return obj, nil
}

// AnalyzeBase runs the first synthesis stage over the evidence summary.
func (e *Engine) AnalyzeBase(ctx context.Context, idea string, tier models.Tier, evidence models.EvidenceSummary) (*models.BaseAnalysis, error) {
	obj, err := e.GenerateStructured(ctx, baseAnalysisPrompt(idea, tier, evidence), baseAnalysisShape)
	if err != nil {
		return nil, fmt.Errorf("base analysis: %w", err)
	}

	var base models.BaseAnalysis
	if err := decodeObject(obj, &base); err != nil {
		return nil, fmt.Errorf("base analysis: %w", err)
	}
	return &base, nil
}

// ExpandDashboard runs the second synthesis stage, expanding the base
// analysis into the ten dashboard sections. If the model leaves the
// category diagnosis empty it is reconstructed from the base analysis,
// never dropped.
func (e *Engine) ExpandDashboard(ctx context.Context, data *models.MarketData, base *models.BaseAnalysis) (*models.DashboardAnalysis, error) {
	obj, err := e.GenerateStructured(ctx, dashboardPrompt(data, base), dashboardShape)
	if err != nil {
		return nil, fmt.Errorf("dashboard expansion: %w", err)
	}

	var dashboard models.DashboardAnalysis
	if err := decodeObject(obj, &dashboard); err != nil {
		return nil, fmt.Errorf("dashboard expansion: %w", err)
	}

	if strings.TrimSpace(dashboard.CategoryDiagnosis) == "" {
		dashboard.CategoryDiagnosis = fallbackCategoryDiagnosis(base.CategoryDiagnosis)
	}

	return &dashboard, nil
}

// decodeObject round-trips a validated JSON object into a typed record.
func decodeObject(obj map[string]any, out any) error {
	buf, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode object: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	return nil
}

// fallbackCategoryDiagnosis renders a narrative diagnosis from the base
// analysis when the expansion stage omits one.
func fallbackCategoryDiagnosis(cat models.CategoryDiagnosis) string {
	assumed := orDefault(cat.AssumedCategory, "your current category")
	recommended := orDefault(cat.RecommendedCategory, assumed)
	reasoning := orDefault(cat.Reasoning, "Based on the market analysis, your category positioning needs evaluation.")

	confidence := cat.Confidence
	if confidence == 0 {
		confidence = 0.7
	}

	var verdict, meaning string
	if cat.ShouldReframe && assumed != recommended {
		verdict = fmt.Sprintf("**You should REFRAME from '%s' to '%s'**", assumed, recommended)
		meaning = "This category shift could significantly impact your positioning, messaging, and go-to-market strategy. Consider how this reframe changes your competitive set and target audience."
	} else {
		verdict = fmt.Sprintf("**You ARE competing in the right category: '%s'**", assumed)
		meaning = "Your current category positioning aligns well with market realities. Focus on differentiation within this category rather than reframing."
	}

	return fmt.Sprintf(`%s

**Current Category:** %s

**Recommended Category:** %s

**Reasoning:**
%s

**Confidence Level:** %d%%

**What This Means:**
%s`, verdict, assumed, recommended, reasoning, int(confidence*100), meaning)
}
