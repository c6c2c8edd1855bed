// Package confidence grades extraction confidence scores for display.
package confidence

import (
	"fmt"
	"math"
	"sort"
)

type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

const (
	HighThreshold   = 0.85
	MediumThreshold = 0.5
)

type Indicator struct {
	Field      string  `json:"field"`
	Score      float64 `json:"score"`
	Percentage int     `json:"percentage"`
	Level      Level   `json:"level"`
	Icon       string  `json:"icon"`
	ColorClass string  `json:"color_class"`
	Tooltip    string  `json:"tooltip"`
}

func LevelOf(score float64) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func Percentage(score float64) int {
	return int(math.Round(score * 100))
}

func For(field string, score float64) Indicator {
	pct := Percentage(score)
	ind := Indicator{Field: field, Score: score, Percentage: pct, Level: LevelOf(score)}

	switch ind.Level {
	case LevelHigh:
		ind.Icon = "check"
		ind.ColorClass = "text-success"
		ind.Tooltip = fmt.Sprintf("Confidence: %d%%", pct)
	case LevelMedium:
		ind.Icon = "alert-triangle"
		ind.ColorClass = "text-warning"
		ind.Tooltip = fmt.Sprintf("Confidence: %d%% - Please verify", pct)
	default:
		ind.Icon = "alert-circle"
		ind.ColorClass = "text-destructive"
		ind.Tooltip = fmt.Sprintf("Low confidence: %d%% - Manual review required", pct)
	}
	return ind
}

// Indicators builds one indicator per scored field, sorted by field name.
// Fields without a score get no indicator.
func Indicators(scores map[string]float64) []Indicator {
	out := make([]Indicator, 0, len(scores))
	for field, score := range scores {
		out = append(out, For(field, score))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// NeedsReview lists fields below the high threshold.
func NeedsReview(scores map[string]float64) []string {
	var fields []string
	for _, ind := range Indicators(scores) {
		if ind.Level != LevelHigh {
			fields = append(fields, ind.Field)
		}
	}
	return fields
}
