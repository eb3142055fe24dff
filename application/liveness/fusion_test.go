package liveness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuseStaysInUnitInterval(t *testing.T) {
	cfg := DefaultFusionConfig()
	heuristics := DefaultHeuristicConfig()
	for smoothed := 0.0; smoothed <= 1.0; smoothed += 0.05 {
		for adj := heuristics.MinAdjustment; adj <= heuristics.MaxAdjustment; adj += 0.05 {
			score := Fuse(smoothed, adj, cfg)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestFuseNeutralAdjustment(t *testing.T) {
	cfg := DefaultFusionConfig()
	assert.InDelta(t, 0.75*0.9+0.25*0.5, Fuse(0.9, 0, cfg), 1e-9)
}

func TestFusePenaltyTiers(t *testing.T) {
	cfg := DefaultFusionConfig()
	tests := []struct {
		name       string
		adjustment float64
		tier       string
		multiplier float64
	}{
		{name: "no penalty", adjustment: -0.10, tier: "", multiplier: 1},
		{name: "moderate", adjustment: -0.30, tier: "moderate", multiplier: 0.80},
		{name: "moderate boundary", adjustment: -0.25, tier: "moderate", multiplier: 0.80},
		{name: "severe", adjustment: -0.50, tier: "severe", multiplier: 0.60},
		{name: "severe floor", adjustment: -0.60, tier: "severe", multiplier: 0.60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FuseDetailed(0.5, tt.adjustment, cfg)
			baseline := 0.75*0.5 + 0.25*math.Max(0, 0.5+tt.adjustment)
			assert.Equal(t, tt.tier, result.Tier)
			assert.InDelta(t, baseline*tt.multiplier, result.Score, 1e-9)
		})
	}
}

func TestFuseSevereTierIsMeasurablyLower(t *testing.T) {
	cfg := DefaultFusionConfig()
	baseline := cfg.ClassifierWeight*0.5 + cfg.HeuristicWeight*0.0
	penalised := Fuse(0.5, -0.5, cfg)
	assert.Less(t, penalised, baseline-0.1)
}

func TestFuseDegenerateInputs(t *testing.T) {
	cfg := DefaultFusionConfig()
	assert.Equal(t, Fuse(0, 0, cfg), Fuse(math.NaN(), 0, cfg))
	assert.Equal(t, Fuse(0.7, 0, cfg), Fuse(0.7, math.NaN(), cfg))
	assert.Equal(t, 1.0, Fuse(1, 0.5, FusionConfig{ClassifierWeight: 1, HeuristicWeight: 1}))
}
