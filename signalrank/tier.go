package signalrank

import (
	"fmt"

	"github.com/habiliai/signalrank/entity"
)

const (
	// DefaultBaseURL is the public origin used when a caller does not supply one.
	DefaultBaseURL = "https://signalrank.dev"

	// Lower bounds, inclusive.
	TierSThreshold = 9.0
	TierAThreshold = 7.5
	TierBThreshold = 5.0
)

var (
	tierColors = map[entity.Tier]string{
		entity.TierS: "#00FF94",
		entity.TierA: "#3B82F6",
		entity.TierB: "#EAB308",
		entity.TierC: "#6B7280",
	}

	tierEmojis = map[entity.Tier]string{
		entity.TierS: "🏆",
		entity.TierA: "⭐",
		entity.TierB: "📊",
		entity.TierC: "📈",
	}

	tierReliability = map[entity.Tier]string{
		entity.TierS: "Top-tier reliability: actively maintained, production-ready and well documented.",
		entity.TierA: "High reliability: well maintained and suitable for most production workloads.",
		entity.TierB: "Moderate reliability: usable, but verify its behavior before relying on it in production.",
		entity.TierC: "Experimental: few signals of maintenance or readiness, use with caution.",
	}
)

// TierFromScore classifies a score. It is defined for every float64; values
// outside [0,10] are not clamped and NaN falls into C.
func TierFromScore(score float64) entity.Tier {
	switch {
	case score >= TierSThreshold:
		return entity.TierS
	case score >= TierAThreshold:
		return entity.TierA
	case score >= TierBThreshold:
		return entity.TierB
	default:
		return entity.TierC
	}
}

// TierColor returns the display color of a tier. It panics on an unknown tier.
func TierColor(tier entity.Tier) string {
	color, ok := tierColors[tier]
	if !ok {
		panic(fmt.Sprintf("signalrank: unknown tier %q", tier))
	}
	return color
}

func TierEmoji(tier entity.Tier) string {
	if emoji, ok := tierEmojis[tier]; ok {
		return emoji
	}
	return "📊"
}

// TierReliability describes in one line how much a tier can be relied upon.
func TierReliability(tier entity.Tier) string {
	if s, ok := tierReliability[tier]; ok {
		return s
	}
	return tierReliability[entity.TierC]
}

// FormatScore renders a score with one decimal, the way every artifact shows it.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
