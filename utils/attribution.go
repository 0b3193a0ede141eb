package utils

import (
	"fmt"
	"math"
	"sort"

	"github.com/guptavaibhav1806/food-analyzer-api/models"
)

// Direction labels for a feature's contribution to the prediction.
const (
	DirectionFavorable   = "favorable"
	DirectionUnfavorable = "unfavorable"
	DirectionNeutral     = "neutral"
)

// Contributions within ±directionThreshold are considered neutral.
const directionThreshold = 0.01

// DefaultTopK bounds how many attributions are returned when the caller
// does not say otherwise.
const DefaultTopK = 8

// RankAttributions orders features by absolute contribution, descending,
// with ties broken by original feature order, and returns at most topK
// entries. When feature names are missing or out of step with the
// contribution vector, positional names are synthesized instead of failing.
func RankAttributions(names []string, contributions []float64, topK int) []models.Attribution {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(names) != len(contributions) {
		names = make([]string, len(contributions))
		for i := range names {
			names[i] = fmt.Sprintf("feature_%d", i)
		}
	}

	order := make([]int, len(contributions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(contributions[order[a]]) > math.Abs(contributions[order[b]])
	})

	if len(order) > topK {
		order = order[:topK]
	}

	out := make([]models.Attribution, 0, len(order))
	for _, idx := range order {
		out = append(out, models.Attribution{
			Feature:   names[idx],
			Direction: directionFor(contributions[idx]),
		})
	}
	return out
}

// FormatAttributions renders attributions as human-readable lines.
func FormatAttributions(atts []models.Attribution) []string {
	out := make([]string, 0, len(atts))
	for _, a := range atts {
		out = append(out, fmt.Sprintf("%s (%s)", a.Feature, a.Direction))
	}
	return out
}

func directionFor(contribution float64) string {
	switch {
	case contribution < -directionThreshold:
		return DirectionUnfavorable
	case contribution > directionThreshold:
		return DirectionFavorable
	default:
		return DirectionNeutral
	}
}
