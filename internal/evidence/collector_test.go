package evidence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/waypointhq/waypoint/internal/models"
)

// fakeSearcher replays canned results keyed by query substring.
type fakeSearcher struct {
	name    string
	results map[string][]models.SearchResult
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]models.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	for key, results := range f.results {
		if strings.Contains(query, key) {
			return results, nil
		}
	}
	return nil, nil
}

func (f *fakeSearcher) Source() string { return f.name }

type fakeDiscoverer struct {
	name     string
	products []models.Product
	err      error
}

func (f *fakeDiscoverer) SearchByTopic(context.Context, string, int) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeDiscoverer) Source() string { return f.name }

type fakeTrends struct {
	report *models.TrendReport
	err    error
}

func (f *fakeTrends) AnalyzeKeyword(context.Context, string) (*models.TrendReport, error) {
	return f.report, f.err
}

func TestCollectDeduplicatesCompetitorsFirstSourceWins(t *testing.T) {
	web := &fakeSearcher{
		name: "tavily",
		results: map[string][]models.SearchResult{
			"competitors alternatives": {
				{Title: "Foo - Task Manager", URL: "https://Foo.com/", Content: "foo app", Score: 0.8},
			},
		},
	}
	products := &fakeDiscoverer{
		name: "producthunt",
		products: []models.Product{
			// Same entity, different surface form: must be skipped.
			{Name: "Foo", Website: "https://foo.com", Tagline: "foo again"},
			{Name: "Bar", Website: "https://bar.io", Tagline: "bar tagline", Description: "bar desc"},
			{Name: "NoSite"}, // no website, skipped
		},
	}

	c := NewCollector(web, products, nil, nil)
	data := c.Collect(context.Background(), "ai task manager for adhd")

	if len(data.Competitors) != 2 {
		t.Fatalf("got %d competitors, want 2: %+v", len(data.Competitors), data.Competitors)
	}
	if data.Competitors[0].Source != "tavily" {
		t.Errorf("first competitor source = %q, want tavily (first source wins)", data.Competitors[0].Source)
	}
	if data.Competitors[1].Name != "Bar" || data.Competitors[1].Source != "producthunt" {
		t.Errorf("second competitor = %+v, want Bar from producthunt", data.Competitors[1])
	}
	if data.Competitors[1].ConfidenceScore != 0.9 {
		t.Errorf("product competitor confidence = %v, want 0.9", data.Competitors[1].ConfidenceScore)
	}

	// No two records share a fingerprint.
	seen := make(map[string]struct{})
	for _, comp := range data.Competitors {
		fp := Fingerprint(comp.URL)
		if _, dup := seen[fp]; dup {
			t.Errorf("duplicate fingerprint %q in competitors", fp)
		}
		seen[fp] = struct{}{}
	}
}

func TestCollectRoutesIntelligenceBuckets(t *testing.T) {
	web := &fakeSearcher{
		name: "tavily",
		results: map[string][]models.SearchResult{
			"pain points complaints": {
				{Title: "Why ADHD users abandon todo apps", URL: "https://blog.x.com/1", Content: "long pain essay", Score: 0.6},
			},
			"community forum": {
				{Title: "r/adhd", URL: "https://reddit.com/r/adhd", Content: "discussion"},
				{Title: "Market report", URL: "https://research.io/r", Content: "market growth outlook"},
			},
			"alternatives solutions": {
				{Title: "Todoist", URL: "https://todoist.com", Content: "alternative tool"},
			},
		},
	}

	c := NewCollector(web, nil, nil, nil)
	data := c.Collect(context.Background(), "ai task manager for adhd")

	if len(data.Intelligence.PainPoints) != 1 {
		t.Errorf("pain points = %d, want 1", len(data.Intelligence.PainPoints))
	}
	// Community query results go through the classifier: the reddit URL lands
	// in communities, the market report in demand signals.
	if len(data.Intelligence.Communities) != 1 {
		t.Errorf("communities = %d, want 1", len(data.Intelligence.Communities))
	}
	if len(data.Intelligence.DemandSignals) != 1 {
		t.Errorf("demand signals = %d, want 1", len(data.Intelligence.DemandSignals))
	}
	if len(data.Intelligence.ExistingAlternatives) != 1 {
		t.Errorf("alternatives = %d, want 1", len(data.Intelligence.ExistingAlternatives))
	}
	if got := data.Intelligence.PainPoints[0].ConfidenceScore; got != 0.6 {
		t.Errorf("pain point confidence = %v, want 0.6", got)
	}
}

func TestCollectExcludesCompetitorsFromAlternatives(t *testing.T) {
	web := &fakeSearcher{
		name: "tavily",
		results: map[string][]models.SearchResult{
			"competitors alternatives similar": {
				{Title: "Todoist", URL: "https://todoist.com/", Score: 0.9},
			},
			"alternatives solutions": {
				{Title: "Todoist review", URL: "https://todoist.com", Content: "tool"},
				{Title: "Things 3", URL: "https://culturedcode.com/things", Content: "tool"},
			},
		},
	}

	c := NewCollector(web, nil, nil, nil)
	data := c.Collect(context.Background(), "ai task manager for adhd")

	if len(data.Intelligence.ExistingAlternatives) != 1 {
		t.Fatalf("alternatives = %d, want 1 (competitor excluded)", len(data.Intelligence.ExistingAlternatives))
	}
	if data.Intelligence.ExistingAlternatives[0].Title != "Things 3" {
		t.Errorf("surviving alternative = %q, want Things 3", data.Intelligence.ExistingAlternatives[0].Title)
	}
}

func TestCollectDegradesOnSourceFailure(t *testing.T) {
	web := &fakeSearcher{name: "tavily", err: errors.New("connection refused")}
	products := &fakeDiscoverer{name: "producthunt", err: errors.New("401 unauthorized")}
	trends := &fakeTrends{err: errors.New("no usable data")}

	c := NewCollector(web, products, trends, nil)
	data := c.Collect(context.Background(), "ai task manager for adhd")

	if data == nil {
		t.Fatal("Collect returned nil bundle on source failure")
	}
	if len(data.Competitors) != 0 || data.Intelligence.Total() != 0 {
		t.Errorf("expected empty bundle, got %+v", data)
	}
	if data.SearchTrends != nil {
		t.Errorf("expected no trend report, got %+v", data.SearchTrends)
	}
	if data.ProductIdea != "ai task manager for adhd" {
		t.Errorf("bundle idea = %q", data.ProductIdea)
	}
}

func TestCollectAttachesTrendReport(t *testing.T) {
	report := &models.TrendReport{Keyword: "ai task manager for adhd", Trend: models.TrendGrowing}
	c := NewCollector(&fakeSearcher{name: "tavily"}, nil, &fakeTrends{report: report}, nil)

	data := c.Collect(context.Background(), "ai task manager for adhd")
	if data.SearchTrends == nil || data.SearchTrends.Trend != models.TrendGrowing {
		t.Errorf("SearchTrends = %+v, want growing report", data.SearchTrends)
	}
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Todoist - The best task manager", "Todoist"},
		{"Todoist | Official Site", "Todoist"},
		{"Notion - Official Site", "Notion"},
		{"A very long title with more than five words in it", "A very long title with"},
		{"Linear", "Linear"},
	}
	for _, tt := range tests {
		if got := ExtractCompanyName(tt.title); got != tt.want {
			t.Errorf("ExtractCompanyName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
