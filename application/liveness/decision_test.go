package liveness

import (
	"testing"

	"faceguard.io/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEvidence(t *testing.T) {
	cfg := DefaultDecisionConfig()
	tests := []struct {
		name string
		ev   Evidence
		want EvidenceKind
	}{
		{name: "strong real", ev: Evidence{Final: 0.8, Raw: 0.9, Adjustment: 0}, want: EvidenceStrongReal},
		{name: "weak real", ev: Evidence{Final: 0.65, Raw: 0.7, Adjustment: -0.2}, want: EvidenceWeakReal},
		{name: "strong classifier held back by heuristics", ev: Evidence{Final: 0.7, Raw: 0.9, Adjustment: -0.2}, want: EvidenceWeakReal},
		{name: "strong fake", ev: Evidence{Final: 0.1, Raw: 0.1, Adjustment: -0.3}, want: EvidenceStrongFake},
		{name: "weak fake", ev: Evidence{Final: 0.3, Raw: 0.35, Adjustment: 0}, want: EvidenceWeakFake},
		{name: "fake raw with good heuristics is not strong", ev: Evidence{Final: 0.2, Raw: 0.1, Adjustment: 0.2}, want: EvidenceWeakFake},
		{name: "neutral", ev: Evidence{Final: 0.5, Raw: 0.5, Adjustment: 0}, want: EvidenceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvidence(tt.ev, cfg))
		})
	}
}

func TestDecideNeverRealBeforeMinimum(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state := ResetDecision()
	var out Outcome
	for i := 1; i < cfg.MinRealFrames; i++ {
		state, out = Decide(state, Evidence{Final: 1, Raw: 1, Adjustment: 0.5}, cfg)
		require.NotEqual(t, entities.VerdictReal, out.Verdict, "frame %d", i)
		assert.Equal(t, entities.StateAnalyzing, out.State)
		assert.Equal(t, entities.TagClassifierDirectPass, out.Tag)
	}
	state, out = Decide(state, Evidence{Final: 1, Raw: 1, Adjustment: 0.5}, cfg)
	assert.Equal(t, entities.VerdictReal, out.Verdict)
	assert.Equal(t, entities.StateRealLocked, out.State)
	assert.Equal(t, cfg.MinRealFrames, state.RealConsecutive)
	assert.Equal(t, float64(cfg.MinRealFrames)*cfg.StrongRealGain, state.ConfidenceAccumulator)
}

func TestDecideWeakEvidenceNeedsAccumulator(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state := ResetDecision()
	weak := Evidence{Final: 0.65, Raw: 0.7, Adjustment: 0}
	var out Outcome
	for i := 0; i < cfg.MinRealFrames; i++ {
		state, out = Decide(state, weak, cfg)
	}
	assert.Equal(t, entities.VerdictUncertain, out.Verdict)
	assert.Equal(t, 5.0, state.ConfidenceAccumulator)

	for i := 0; i < 4; i++ {
		state, out = Decide(state, weak, cfg)
	}
	assert.Equal(t, entities.VerdictReal, out.Verdict)
	assert.Equal(t, entities.TagClassifierWeakPass, out.Tag)
}

func TestDecideStrongFakeOverridesImmediately(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state, out := Decide(ResetDecision(), Evidence{Final: 0.05, Raw: 0.05, Adjustment: -0.4}, cfg)
	assert.Equal(t, entities.VerdictSpoof, out.Verdict)
	assert.Equal(t, entities.StateSpoofFlagged, out.State)
	assert.Equal(t, entities.TagStrongFakeOverride, out.Tag)
	assert.Equal(t, 1, state.SpoofConsecutive)
}

func TestDecideWeakFakeNeedsConsecutiveFrames(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state := ResetDecision()
	weak := Evidence{Final: 0.3, Raw: 0.3, Adjustment: 0}
	var out Outcome
	for i := 1; i < cfg.MinSpoofFrames; i++ {
		state, out = Decide(state, weak, cfg)
		assert.Equal(t, entities.VerdictUncertain, out.Verdict)
		assert.Equal(t, entities.TagWeakFake, out.Tag)
	}
	state, out = Decide(state, weak, cfg)
	assert.Equal(t, entities.VerdictSpoof, out.Verdict)
	assert.Equal(t, cfg.MinSpoofFrames, state.SpoofConsecutive)
}

func TestDecideRealResetsSpoofAndFakeClearsReal(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state := ResetDecision()
	state, _ = Decide(state, Evidence{Final: 0.3, Raw: 0.3}, cfg)
	state, _ = Decide(state, Evidence{Final: 0.3, Raw: 0.3}, cfg)
	require.Equal(t, 2, state.SpoofConsecutive)

	state, _ = Decide(state, Evidence{Final: 0.65, Raw: 0.7}, cfg)
	assert.Equal(t, 0, state.SpoofConsecutive)
	assert.Equal(t, 1, state.RealConsecutive)
	assert.True(t, state.HasLastReal)
	assert.Equal(t, 0.65, state.LastRealScore)

	// below the swap guard's arming score, so this is an ordinary fake frame
	state, out := Decide(state, Evidence{Final: 0.35, Raw: 0.38}, cfg)
	assert.False(t, out.SwapGuard)
	assert.Equal(t, 0, state.RealConsecutive)
	assert.Zero(t, state.ConfidenceAccumulator)
	assert.Equal(t, 1, state.SpoofConsecutive)
	assert.False(t, state.HasLastReal)
}

func TestDecideNeutralFrameKeepsSpoofCount(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state, _ := Decide(ResetDecision(), Evidence{Final: 0.3, Raw: 0.3}, cfg)
	state, out := Decide(state, Evidence{Final: 0.5, Raw: 0.5}, cfg)
	assert.Equal(t, 1, state.SpoofConsecutive)
	assert.Equal(t, EvidenceNone, out.Kind)
	assert.Equal(t, entities.TagInsufficientEvidence, out.Tag)
}

func TestDecideDebugTags(t *testing.T) {
	cfg := DefaultDecisionConfig()
	tests := []struct {
		name string
		ev   Evidence
		want entities.DebugTag
	}{
		{name: "direct pass", ev: Evidence{Final: 0.8, Raw: 0.9, Adjustment: 0}, want: entities.TagClassifierDirectPass},
		{name: "rescued by heuristics", ev: Evidence{Final: 0.65, Raw: 0.7, Adjustment: 0.2}, want: entities.TagHeuristicRescued},
		{name: "weak pass", ev: Evidence{Final: 0.65, Raw: 0.7, Adjustment: 0}, want: entities.TagClassifierWeakPass},
		{name: "rejected by heuristics", ev: Evidence{Final: 0.55, Raw: 0.9, Adjustment: -0.3}, want: entities.TagHeuristicRejected},
		{name: "insufficient", ev: Evidence{Final: 0.5, Raw: 0.5, Adjustment: 0}, want: entities.TagInsufficientEvidence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := Decide(ResetDecision(), tt.ev, cfg)
			assert.Equal(t, tt.want, out.Tag)
		})
	}
}

func TestDecideSwapGuard(t *testing.T) {
	cfg := DefaultDecisionConfig()
	state := ResetDecision()
	for i := 0; i < 3; i++ {
		state, _ = Decide(state, Evidence{Final: 0.8, Raw: 0.9}, cfg)
	}

	state, out := Decide(state, Evidence{Final: 0.275, Raw: 0.2}, cfg)
	assert.True(t, out.SwapGuard)
	assert.Equal(t, entities.TagSwapAttackGuard, out.Tag)
	assert.Equal(t, cfg.SwapForcedScore, out.Final)
	assert.Equal(t, cfg.SwapSpoofFloor, state.SpoofConsecutive)
	assert.Equal(t, 0, state.RealConsecutive)
	assert.Zero(t, state.ConfidenceAccumulator)
	assert.False(t, state.HasLastReal)

	state, out = Decide(state, Evidence{Final: 0.8, Raw: 0.9}, cfg)
	assert.False(t, out.SwapGuard)
	assert.Equal(t, 0, state.SuddenDropCount)
}

func TestDecideSwapGuardAcrossSeveralFrames(t *testing.T) {
	cfg := DefaultDecisionConfig()
	cfg.SwapDropFrames = 2
	state := ResetDecision()
	state, _ = Decide(state, Evidence{Final: 0.8, Raw: 0.9}, cfg)

	state, out := Decide(state, Evidence{Final: 0.35, Raw: 0.3}, cfg)
	assert.False(t, out.SwapGuard)
	assert.Equal(t, 1, state.SuddenDropCount)
	assert.Equal(t, 1, state.SpoofConsecutive)

	state, out = Decide(state, Evidence{Final: 0.35, Raw: 0.3}, cfg)
	assert.True(t, out.SwapGuard)
	assert.Equal(t, 2, state.SuddenDropCount)
	assert.Equal(t, cfg.SwapSpoofFloor, state.SpoofConsecutive)
}

func TestDecideClearsMissingFaceCounter(t *testing.T) {
	state := ResetDecision()
	state.MissingFaceCounter = 3
	state, _ = Decide(state, Evidence{Final: 0.5, Raw: 0.5}, DefaultDecisionConfig())
	assert.Equal(t, 0, state.MissingFaceCounter)
}

func TestProgress(t *testing.T) {
	cfg := DefaultDecisionConfig()
	assert.Equal(t, 0.5, Progress(entities.DecisionState{RealConsecutive: 5}, cfg))
	assert.Equal(t, 1.0, Progress(entities.DecisionState{RealConsecutive: 40}, cfg))
}
