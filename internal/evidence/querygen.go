package evidence

import "strings"

// Structure is the coarse linguistic shape detected in a product idea.
type Structure string

const (
	StructureAnalogy             Structure = "analogy"
	StructureSolutionForAudience Structure = "solution_for_audience"
	StructureProblemExploration  Structure = "problem_exploration"
	StructureGeneral             Structure = "general"
)

// MaxQueries caps the number of search queries derived from one idea.
const MaxQueries = 3

// NormalizeIdea lowercases the input and collapses runs of whitespace.
func NormalizeIdea(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), " ")
}

// DetectStructure probes the normalized idea for linguistic markers, in
// precedence order: "X but for Y" analogies, "solution for audience" phrasing,
// "why"-style problem exploration, then a general fallback.
func DetectStructure(text string) Structure {
	if strings.Contains(text, " but for ") {
		return StructureAnalogy
	}
	if strings.Contains(text, " for ") {
		return StructureSolutionForAudience
	}
	if strings.HasPrefix(text, "why ") || strings.Contains(text, " why ") {
		return StructureProblemExploration
	}
	return StructureGeneral
}

// GenerateQueries derives up to MaxQueries diversified search queries from a
// free-text idea. The output is deduplicated preserving first occurrence and
// stable for identical normalized input.
func GenerateQueries(userInput string) []string {
	text := NormalizeIdea(userInput)

	var queries []string
	switch DetectStructure(text) {
	case StructureSolutionForAudience:
		queries = []string{
			"best " + text,
			text + " problems",
			text + " examples",
		}
	case StructureProblemExploration:
		queries = []string{
			text,
			text + " solutions",
			text + " examples",
		}
	case StructureAnalogy:
		queries = []string{
			strings.ReplaceAll(text, " but for ", " for "),
			text + " examples",
			text + " alternatives",
		}
	default:
		queries = []string{
			text,
			text + " problems",
			text + " examples",
		}
	}

	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, MaxQueries)
	for _, q := range queries {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
		if len(out) == MaxQueries {
			break
		}
	}
	return out
}
