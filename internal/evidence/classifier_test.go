package evidence

import (
	"testing"

	"github.com/waypointhq/waypoint/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		content string
		want    models.SignalBucket
	}{
		{
			name:    "reddit url",
			url:     "https://www.reddit.com/r/productivity/comments/abc",
			content: "some discussion",
			want:    models.BucketCommunities,
		},
		{
			name:    "community url beats pain content",
			url:     "https://reddit.com/r/adhd",
			content: "the pain of managing tasks is real",
			want:    models.BucketCommunities,
		},
		{
			name:    "quora uppercase",
			url:     "https://WWW.QUORA.COM/What-apps",
			content: "",
			want:    models.BucketCommunities,
		},
		{
			name:    "pain content",
			url:     "https://blog.example.com/post",
			content: "Users struggle with context switching",
			want:    models.BucketPainPoints,
		},
		{
			name:    "adhd keyword",
			url:     "https://example.com",
			content: "Designed for people with ADHD",
			want:    models.BucketPainPoints,
		},
		{
			name:    "alternatives content",
			url:     "https://example.com/list",
			content: "The 10 best software tools of 2025",
			want:    models.BucketExistingAlternatives,
		},
		{
			name:    "pain beats alternatives",
			url:     "https://example.com",
			content: "this tool solves a real problem",
			want:    models.BucketPainPoints,
		},
		{
			name:    "demand content",
			url:     "https://example.com/report",
			content: "The market is seeing rapid growth",
			want:    models.BucketDemandSignals,
		},
		{
			name:    "no keywords",
			url:     "https://example.com/about",
			content: "We are a small team based in Berlin",
			want:    models.BucketGeneralInsight,
		},
		{
			name:    "empty everything",
			url:     "",
			content: "",
			want:    models.BucketGeneralInsight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.url, tt.content)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.url, tt.content, got, tt.want)
			}
			// Deterministic: same inputs, same bucket.
			if again := Classify(tt.url, tt.content); again != got {
				t.Errorf("Classify not deterministic: %q then %q", got, again)
			}
		})
	}
}
