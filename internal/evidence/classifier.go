package evidence

import (
	"strings"

	"github.com/waypointhq/waypoint/internal/models"
)

// Keyword sets for the classification cascade, checked in order.
var (
	communityKeywords = []string{"reddit", "quora", "forum", "community"}
	painKeywords      = []string{"pain", "struggle", "problem", "difficult", "adhd"}
	altKeywords       = []string{"alternative", "tool", "app", "software"}
	demandKeywords    = []string{"market", "trend", "growth", "demand"}
)

// Classify buckets an unstructured (url, content) pair into one of the five
// market-signal categories. The cascade is deterministic and total:
// community-hosting URLs win first, then pain-point language, then
// alternative/tooling language, then demand language, and anything left is a
// general insight. Matching is case-insensitive substring membership.
func Classify(rawURL, content string) models.SignalBucket {
	u := strings.ToLower(rawURL)
	c := strings.ToLower(content)

	if containsAny(u, communityKeywords) {
		return models.BucketCommunities
	}
	if containsAny(c, painKeywords) {
		return models.BucketPainPoints
	}
	if containsAny(c, altKeywords) {
		return models.BucketExistingAlternatives
	}
	if containsAny(c, demandKeywords) {
		return models.BucketDemandSignals
	}
	return models.BucketGeneralInsight
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
