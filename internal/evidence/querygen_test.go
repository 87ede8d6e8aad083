package evidence

import (
	"reflect"
	"testing"
)

func TestDetectStructure(t *testing.T) {
	tests := []struct {
		text string
		want Structure
	}{
		{"uber but for groceries", StructureAnalogy},
		{"ai task manager for adhd", StructureSolutionForAudience},
		{"why do startups fail", StructureProblemExploration},
		{"something why bother", StructureProblemExploration},
		{"personal finance tracker", StructureGeneral},
		// "but for" wins over plain "for".
		{"notion but for lawyers", StructureAnalogy},
	}
	for _, tt := range tests {
		if got := DetectStructure(tt.text); got != tt.want {
			t.Errorf("DetectStructure(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestGenerateQueries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "solution for audience",
			input: "AI task manager for ADHD",
			want: []string{
				"best ai task manager for adhd",
				"ai task manager for adhd problems",
				"ai task manager for adhd examples",
			},
		},
		{
			name:  "analogy",
			input: "Uber but for groceries",
			want: []string{
				"uber for groceries",
				"uber but for groceries examples",
				"uber but for groceries alternatives",
			},
		},
		{
			name:  "problem exploration",
			input: "why do side projects die",
			want: []string{
				"why do side projects die",
				"why do side projects die solutions",
				"why do side projects die examples",
			},
		},
		{
			name:  "general",
			input: "personal finance tracker",
			want: []string{
				"personal finance tracker",
				"personal finance tracker problems",
				"personal finance tracker examples",
			},
		},
		{
			name:  "whitespace collapsed",
			input: "  AI   task manager   for ADHD ",
			want: []string{
				"best ai task manager for adhd",
				"ai task manager for adhd problems",
				"ai task manager for adhd examples",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateQueries(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateQueries(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if len(got) > MaxQueries {
				t.Errorf("got %d queries, cap is %d", len(got), MaxQueries)
			}
			// Stable across calls for identical input.
			if again := GenerateQueries(tt.input); !reflect.DeepEqual(again, got) {
				t.Errorf("GenerateQueries not stable: %v then %v", got, again)
			}
		})
	}
}

func TestGenerateQueriesNoDuplicates(t *testing.T) {
	// Any input that would template to identical variants must deduplicate.
	for _, input := range []string{"task manager for adhd", "why why why", "x"} {
		got := GenerateQueries(input)
		seen := make(map[string]struct{})
		for _, q := range got {
			if _, dup := seen[q]; dup {
				t.Errorf("GenerateQueries(%q) contains duplicate %q", input, q)
			}
			seen[q] = struct{}{}
		}
	}
}
