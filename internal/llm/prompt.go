package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/waypointhq/waypoint/internal/models"
)

// Prompt payload caps. Raw evidence can dwarf the context window, so the
// dashboard prompt carries truncated JSON snapshots instead of full dumps.
const (
	maxMarketDataJSON   = 4000
	maxBaseAnalysisJSON = 2000
)

// baseAnalysisShape is the structured schema for the first synthesis stage.
var baseAnalysisShape = Shape{
	{Name: "category_diagnosis", Kind: KindObject, Fields: Shape{
		{Name: "assumed_category", Kind: KindString},
		{Name: "recommended_category", Kind: KindString},
		{Name: "should_reframe", Kind: KindBool},
		{Name: "confidence", Kind: KindFloat},
		{Name: "reasoning", Kind: KindString},
	}},
	{Name: "market_timing", Kind: KindObject, Fields: Shape{
		{Name: "stage", Kind: KindEnum, Enum: []string{"growing", "stable", "declining"}},
		{Name: "justification", Kind: KindString},
	}},
	{Name: "competitive_landscape", Kind: KindObject, Fields: Shape{
		{Name: "intensity", Kind: KindEnum, Enum: []string{"low", "medium", "high"}},
		{Name: "patterns_observed", Kind: KindStringList},
		{Name: "opportunity_gaps", Kind: KindStringList},
	}},
	{Name: "strategy", Kind: KindObject, Fields: Shape{
		{Name: "mvp_feature_priorities", Kind: KindStringList},
		{Name: "distribution_channels", Kind: KindStringList},
		{Name: "pricing_recommendation", Kind: KindObject, Fields: Shape{
			{Name: "model", Kind: KindEnum, Enum: []string{"freemium", "subscription", "one-time", "usage-based"}},
			{Name: "expected_range", Kind: KindString},
			{Name: "rationale", Kind: KindString},
		}},
		{Name: "messaging_templates", Kind: KindStringList},
	}},
	{Name: "overall_confidence", Kind: KindFloat},
}

// dashboardShape is the structured schema for the second synthesis stage:
// ten narrative dashboard sections.
var dashboardShape = Shape{
	{Name: "category_diagnosis", Kind: KindString, Description: "MOST IMPORTANT: Detailed category positioning analysis with clear verdict"},
	{Name: "overview", Kind: KindString, Description: "Executive summary and key takeaways"},
	{Name: "market_reality", Kind: KindString, Description: "Market size, trends, and dynamics"},
	{Name: "competitive_landscape", Kind: KindString, Description: "Competitor analysis with specific examples"},
	{Name: "user_pain_and_desires", Kind: KindString, Description: "User complaints, needs, and desires"},
	{Name: "strategy_and_positioning", Kind: KindString, Description: "Unique positioning and differentiation strategy"},
	{Name: "mvp_blueprint", Kind: KindString, Description: "What to build first and what to skip"},
	{Name: "pricing_and_monetization", Kind: KindString, Description: "Pricing model and justification"},
	{Name: "go_to_market", Kind: KindString, Description: "Distribution channels and launch strategy"},
	{Name: "risks_and_unknowns", Kind: KindString, Description: "Risks, uncertainties, and assumptions to validate"},
}

// baseAnalysisPrompt builds the first-stage strategist prompt from the
// compressed evidence summary.
func baseAnalysisPrompt(idea string, tier models.Tier, evidence models.EvidenceSummary) string {
	return fmt.Sprintf(`You are a senior startup strategist and market analyst.

USER STAGE:
%s
(prelaunch = idea-stage, no product yet)
(postlaunch = product exists, seeking growth)

PRODUCT IDEA:
%q

MARKET EVIDENCE (REAL DATA):
- Competitors found: %d
- Known competitors: %s
- Pain points mentioned: %d
- Top pain points: %s
- Existing alternatives: %s
- Active communities: %s
- Demand signals detected: %d

YOUR TASK:
Analyze ALL this data and provide comprehensive market intelligence:

1. Category Diagnosis - Is the assumed category optimal?
2. Market Conditions - Size, growth, saturation, timing
3. Competitive Analysis - Who they compete with, pricing, gaps
4. User Needs - What users complain about, what they want
5. Strategic Recommendations - What to build, what to skip
6. Distribution Strategy - Where to find users
7. Pricing Recommendation - What to charge and why
8. Risk Assessment - What could go wrong

For each section, cite SPECIFIC evidence from the data above.
Be concrete, not generic.

INSTRUCTIONS:
- Base conclusions strictly on evidence
- Adjust recommendations based on user stage
- Be specific, not generic
- Prefer clarity over hype`,
		strings.ToUpper(string(tier)),
		idea,
		evidence.CompetitorCount,
		joinList(evidence.CompetitorNames),
		evidence.PainPointCount,
		joinList(evidence.TopPainPoints),
		joinList(evidence.ExistingAlternatives),
		joinList(evidence.Communities),
		evidence.DemandSignalStrength,
	)
}

// dashboardPrompt builds the second-stage expansion prompt from the raw
// evidence bundle and the base analysis.
func dashboardPrompt(data *models.MarketData, base *models.BaseAnalysis) string {
	dataJSON, _ := json.MarshalIndent(data, "", "  ")
	baseJSON, _ := json.MarshalIndent(base, "", "  ")
	cat := base.CategoryDiagnosis

	return fmt.Sprintf(`You are an expert market analyst helping founders validate their product strategy.

CRITICAL FOCUS: Category Diagnosis is THE MOST IMPORTANT insight you provide.
This is what founders come here for - helping them figure out if they're competing in the right category.

You are given:
1. Raw market data (competitors, pain points, communities)
2. A base analysis with initial category diagnosis

Your task:
Expand this into a comprehensive, actionable dashboard analysis.

Raw Market Data:
%s

Base Analysis Summary:
%s

Category Diagnosis from Base Analysis:
- Current/Assumed Category: %s
- Recommended Category: %s
- Should Reframe: %t
- Reasoning: %s

DASHBOARD SECTIONS TO CREATE:

1. CATEGORY DIAGNOSIS (TOP PRIORITY!)
   - Start with a clear verdict: "You ARE competing in the right category" OR "You should REFRAME to X category"
   - Explain WHAT category they assumed vs what you recommend
   - Explain WHY (with market evidence)
   - Show the IMPACT of reframing (or not)
   - Be concrete: "Instead of positioning as [X], position as [Y]"
   - Include confidence level and reasoning
   - Make this 2-3 paragraphs, detailed and actionable

2. OVERVIEW
   - Executive summary of the entire analysis
   - Key takeaways and action items
   - 1-2 paragraphs max

3. MARKET REALITY
   - Market size, growth trends, saturation level
   - Current dynamics and forces
   - What's working vs dying
   - Evidence from the collected data

4. COMPETITIVE LANDSCAPE
   - Who the REAL competitors are (not just feature comparisons)
   - Their positioning, pricing, strengths/weaknesses
   - Market gaps and opportunities
   - Specific company examples from the data

5. USER PAIN & DESIRES
   - What users complain about (from pain_points data)
   - What they're really asking for
   - Unmet needs and desires
   - Quote actual pain points if available

6. STRATEGY & POSITIONING
   - How to position uniquely in the market
   - What angle to take
   - Key differentiators to emphasize
   - Messaging direction

7. MVP BLUEPRINT
   - Must-have features for launch
   - Features to skip initially
   - Build sequence and priorities
   - Concrete feature list

8. PRICING & MONETIZATION
   - Recommended pricing model (free/freemium/paid)
   - Price point suggestion with justification
   - Based on competitor pricing from data
   - Monetization strategy

9. GO-TO-MARKET
   - Where to find early users
   - Distribution channels to focus on
   - Communities to target (from communities data)
   - Launch strategy

10. RISKS & UNKNOWNS
    - What could go wrong
    - Market uncertainties
    - Assumptions to validate
    - Red flags

IMPORTANT RULES:
- Be specific, not generic
- Use evidence from the market data
- Write for founders (actionable, not academic)
- If data is missing, state assumptions clearly
- Make category diagnosis detailed and compelling
- Don't invent competitors or data that isn't there`,
		truncatePrompt(string(dataJSON), maxMarketDataJSON),
		truncatePrompt(string(baseJSON), maxBaseAnalysisJSON),
		orDefault(cat.AssumedCategory, "Not specified"),
		orDefault(cat.RecommendedCategory, "Not specified"),
		cat.ShouldReframe,
		orDefault(cat.Reasoning, "No reasoning provided"),
	)
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncatePrompt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
