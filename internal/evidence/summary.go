package evidence

import "github.com/waypointhq/waypoint/internal/models"

// Summary caps. Fixed constants so prompt size stays bounded regardless of
// how much raw evidence was collected.
const (
	maxSummaryCompetitors  = 10
	maxSummaryPainPoints   = 5
	maxSummaryAlternatives = 5
	maxSummaryCommunities  = 5
)

// Summarize compresses a bundle into the bounded projection handed to the
// synthesis engine. Pure and deterministic; recomputed every time.
func Summarize(data *models.MarketData) models.EvidenceSummary {
	summary := models.EvidenceSummary{
		CompetitorCount:      len(data.Competitors),
		PainPointCount:       len(data.Intelligence.PainPoints),
		DemandSignalStrength: len(data.Intelligence.DemandSignals),
	}

	for _, comp := range capFirst(data.Competitors, maxSummaryCompetitors) {
		summary.CompetitorNames = append(summary.CompetitorNames, comp.Name)
	}
	for _, sig := range capFirst(data.Intelligence.PainPoints, maxSummaryPainPoints) {
		summary.TopPainPoints = append(summary.TopPainPoints, sig.Title)
	}
	for _, sig := range capFirst(data.Intelligence.ExistingAlternatives, maxSummaryAlternatives) {
		summary.ExistingAlternatives = append(summary.ExistingAlternatives, sig.Title)
	}
	for _, sig := range capFirst(data.Intelligence.Communities, maxSummaryCommunities) {
		summary.Communities = append(summary.Communities, sig.URL)
	}

	return summary
}

func capFirst[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
