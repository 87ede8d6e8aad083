package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waypointhq/waypoint/internal/models"
)

// dashboardSections pairs display headings with section accessors, in
// reading order. Category diagnosis leads.
var dashboardSections = []struct {
	title string
	text  func(*models.DashboardAnalysis) string
}{
	{"Category Diagnosis", func(d *models.DashboardAnalysis) string { return d.CategoryDiagnosis }},
	{"Overview", func(d *models.DashboardAnalysis) string { return d.Overview }},
	{"Market Reality", func(d *models.DashboardAnalysis) string { return d.MarketReality }},
	{"Competitive Landscape", func(d *models.DashboardAnalysis) string { return d.CompetitiveLandscape }},
	{"User Pain & Desires", func(d *models.DashboardAnalysis) string { return d.UserPainAndDesires }},
	{"Strategy & Positioning", func(d *models.DashboardAnalysis) string { return d.StrategyAndPositioning }},
	{"MVP Blueprint", func(d *models.DashboardAnalysis) string { return d.MVPBlueprint }},
	{"Pricing & Monetization", func(d *models.DashboardAnalysis) string { return d.PricingAndMonetization }},
	{"Go-to-Market", func(d *models.DashboardAnalysis) string { return d.GoToMarket }},
	{"Risks & Unknowns", func(d *models.DashboardAnalysis) string { return d.RisksAndUnknowns }},
}

// renderDashboard formats a completed job's dashboard for the terminal.
func renderDashboard(job *models.Job) string {
	theme := defaultTheme
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Market Analysis: %s", job.ProductIdea))
	b.WriteString("\n" + title + "\n")
	b.WriteString(theme.hintStyle().Render(fmt.Sprintf("job %s · tier %s", job.JobID, job.Tier)) + "\n")

	if data := job.RawMarketData; data != nil {
		b.WriteString(theme.hintStyle().Render(fmt.Sprintf(
			"%d competitors · %d market signals", len(data.Competitors), data.Intelligence.Total())) + "\n")
		if trends := data.SearchTrends; trends != nil {
			b.WriteString(theme.hintStyle().Render(fmt.Sprintf(
				"search demand: %s (%d results)", trends.Trend, trends.EstimatedResultCount)) + "\n")
		}
	}

	if job.Analysis == nil {
		b.WriteString("\nNo dashboard available for this job.\n")
		return b.String()
	}

	for _, section := range dashboardSections {
		text := strings.TrimSpace(section.text(job.Analysis))
		if text == "" {
			continue
		}
		b.WriteString("\n" + theme.sectionStyle().Render(section.title) + "\n")
		b.WriteString(text + "\n")
	}

	return b.String()
}
