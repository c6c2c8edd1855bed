package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		score    float64
		expected Level
	}{
		{1, LevelHigh},
		{0.85, LevelHigh},
		{0.849, LevelMedium},
		{0.5, LevelMedium},
		{0.499, LevelLow},
		{0, LevelLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelOf(tt.score), "score %v", tt.score)
	}
}

func TestFor(t *testing.T) {
	high := For("first_name", 0.98)
	assert.Equal(t, 98, high.Percentage)
	assert.Equal(t, "check", high.Icon)
	assert.Equal(t, "Confidence: 98%", high.Tooltip)

	medium := For("dosing", 0.724)
	assert.Equal(t, 72, medium.Percentage)
	assert.Equal(t, "Confidence: 72% - Please verify", medium.Tooltip)

	low := For("npi", 0.31)
	assert.Equal(t, LevelLow, low.Level)
	assert.Equal(t, "Low confidence: 31% - Manual review required", low.Tooltip)
}

func TestIndicatorsOnlyForScoredFields(t *testing.T) {
	indicators := Indicators(map[string]float64{"npi": 0.4, "dob": 0.9})

	assert.Len(t, indicators, 2)
	assert.Equal(t, "dob", indicators[0].Field)
	assert.Equal(t, "npi", indicators[1].Field)
	assert.Empty(t, Indicators(nil))
}

func TestNeedsReview(t *testing.T) {
	fields := NeedsReview(map[string]float64{"npi": 0.4, "dob": 0.9, "dosing": 0.6})
	assert.Equal(t, []string{"dosing", "npi"}, fields)
}
