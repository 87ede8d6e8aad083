package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeRenderIsStable(t *testing.T) {
	shape := Shape{
		{Name: "verdict", Kind: KindString},
		{Name: "stage", Kind: KindEnum, Enum: []string{"growing", "stable", "declining"}},
		{Name: "confidence", Kind: KindFloat},
		{Name: "reframe", Kind: KindBool},
		{Name: "gaps", Kind: KindStringList},
		{Name: "pricing", Kind: KindObject, Fields: Shape{
			{Name: "model", Kind: KindString},
		}},
	}

	first := shape.Render()
	assert.Equal(t, first, shape.Render())

	assert.Contains(t, first, `"verdict": "string"`)
	assert.Contains(t, first, `"stage": "growing | stable | declining"`)
	assert.Contains(t, first, `"confidence": "float"`)
	assert.Contains(t, first, `"reframe": "boolean"`)
	assert.Contains(t, first, `"gaps": ["string"]`)
	assert.Contains(t, first, `"model": "string"`)
}

func TestShapeRenderDescription(t *testing.T) {
	shape := Shape{{Name: "overview", Kind: KindString, Description: "Executive summary"}}
	assert.Contains(t, shape.Render(), `{"type": "string", "description": "Executive summary"}`)
}

func TestShapeValidate(t *testing.T) {
	shape := Shape{
		{Name: "stage", Kind: KindEnum, Enum: []string{"growing", "stable"}},
		{Name: "confidence", Kind: KindFloat},
		{Name: "gaps", Kind: KindStringList},
		{Name: "pricing", Kind: KindObject, Fields: Shape{
			{Name: "model", Kind: KindString},
		}},
	}

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "valid",
			payload: `{"stage":"growing","confidence":0.8,"gaps":["a","b"],"pricing":{"model":"freemium"}}`,
		},
		{
			name:    "enum case insensitive",
			payload: `{"stage":"Growing","confidence":0.8,"gaps":[],"pricing":{"model":"freemium"}}`,
		},
		{
			name:    "missing field",
			payload: `{"stage":"growing","confidence":0.8,"gaps":[]}`,
			wantErr: `missing field "pricing"`,
		},
		{
			name:    "bad enum value",
			payload: `{"stage":"exploding","confidence":0.8,"gaps":[],"pricing":{"model":"x"}}`,
			wantErr: `"exploding" is not one of`,
		},
		{
			name:    "wrong type",
			payload: `{"stage":"growing","confidence":"high","gaps":[],"pricing":{"model":"x"}}`,
			wantErr: "expected number",
		},
		{
			name:    "non-string list item",
			payload: `{"stage":"growing","confidence":0.8,"gaps":[1],"pricing":{"model":"x"}}`,
			wantErr: "expected string",
		},
		{
			name:    "nested missing",
			payload: `{"stage":"growing","confidence":0.8,"gaps":[],"pricing":{}}`,
			wantErr: `missing field "pricing.model"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var obj map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &obj))

			err := shape.Validate(obj)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDashboardShapeCoversAllSections(t *testing.T) {
	names := make([]string, 0, len(dashboardShape))
	for _, f := range dashboardShape {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"category_diagnosis", "overview", "market_reality", "competitive_landscape",
		"user_pain_and_desires", "strategy_and_positioning", "mvp_blueprint",
		"pricing_and_monetization", "go_to_market", "risks_and_unknowns",
	}, names)
}
