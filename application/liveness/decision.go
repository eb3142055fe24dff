package liveness

import (
	"math"

	"faceguard.io/entities"
)

// Evidence is the per-frame input to the decision state machine.
type Evidence struct {
	Final      float64 `json:"final"`
	Raw        float64 `json:"raw"`
	Adjustment float64 `json:"adjustment"`
}

func (e Evidence) sanitize() Evidence {
	e.Final = clampUnit(finite(e.Final, 0))
	e.Raw = clampUnit(finite(e.Raw, 0))
	e.Adjustment = finite(e.Adjustment, 0)
	return e
}

// atLeast reports whether every signal clears the band's minimums.
func (e Evidence) atLeast(b EvidenceBand) bool {
	return e.Final >= b.Final && e.Raw >= b.Raw && e.Adjustment >= b.Adjustment
}

// atMost reports whether every signal sits under the band's maximums.
func (e Evidence) atMost(b EvidenceBand) bool {
	return e.Final <= b.Final && e.Raw <= b.Raw && e.Adjustment <= b.Adjustment
}

type EvidenceKind string

const (
	EvidenceNone       EvidenceKind = "none"
	EvidenceStrongReal EvidenceKind = "strong_real"
	EvidenceWeakReal   EvidenceKind = "weak_real"
	EvidenceStrongFake EvidenceKind = "strong_fake"
	EvidenceWeakFake   EvidenceKind = "weak_fake"
)

func (k EvidenceKind) real() bool {
	return k == EvidenceStrongReal || k == EvidenceWeakReal
}

func (k EvidenceKind) fake() bool {
	return k == EvidenceStrongFake || k == EvidenceWeakFake
}

type evidenceRule struct {
	kind    EvidenceKind
	matches func(Evidence, DecisionConfig) bool
}

// Fake rules are checked before real rules so an overlapping configuration
// resolves toward rejection.
var evidenceRules = []evidenceRule{
	{EvidenceStrongFake, func(e Evidence, c DecisionConfig) bool { return e.atMost(c.StrongFake) }},
	{EvidenceWeakFake, func(e Evidence, c DecisionConfig) bool { return e.atMost(c.WeakFake) }},
	{EvidenceStrongReal, func(e Evidence, c DecisionConfig) bool { return e.atLeast(c.StrongReal) }},
	{EvidenceWeakReal, func(e Evidence, c DecisionConfig) bool { return e.atLeast(c.WeakReal) }},
}

// ClassifyEvidence returns the first rule the evidence satisfies.
func ClassifyEvidence(e Evidence, cfg DecisionConfig) EvidenceKind {
	e = e.sanitize()
	for _, rule := range evidenceRules {
		if rule.matches(e, cfg) {
			return rule.kind
		}
	}
	return EvidenceNone
}

// Outcome is what the state machine emits for one frame.
type Outcome struct {
	Verdict   entities.Verdict
	State     entities.EngineState
	Tag       entities.DebugTag
	Kind      EvidenceKind
	Final     float64
	SwapGuard bool
}

// Decide advances the decision state by one scored frame.
func Decide(state entities.DecisionState, ev Evidence, cfg DecisionConfig) (entities.DecisionState, Outcome) {
	ev = ev.sanitize()
	state.MissingFaceCounter = 0

	armed := (state.HasLastReal && state.LastRealScore >= cfg.SwapLastRealMin) || state.SuddenDropCount > 0
	if armed && ev.Raw < cfg.SwapDropRaw {
		state.SuddenDropCount++
	} else {
		state.SuddenDropCount = 0
	}
	swapped := state.SuddenDropCount >= cfg.SwapDropFrames
	if swapped {
		ev.Final = math.Min(ev.Final, cfg.SwapForcedScore)
	}

	kind := ClassifyEvidence(ev, cfg)
	switch {
	case kind.real():
		state.RealConsecutive++
		state.SpoofConsecutive = 0
		state.LastRealScore = ev.Final
		state.HasLastReal = true
		if kind == EvidenceStrongReal {
			state.ConfidenceAccumulator += cfg.StrongRealGain
		} else {
			state.ConfidenceAccumulator += cfg.WeakRealGain
		}
	default:
		state.RealConsecutive = 0
		state.ConfidenceAccumulator = 0
		if kind.fake() {
			state.SpoofConsecutive++
			state.LastRealScore = 0
			state.HasLastReal = false
		}
	}

	if swapped {
		state.RealConsecutive = 0
		state.ConfidenceAccumulator = 0
		state.LastRealScore = 0
		state.HasLastReal = false
		if state.SpoofConsecutive < cfg.SwapSpoofFloor {
			state.SpoofConsecutive = cfg.SwapSpoofFloor
		}
	}

	out := Outcome{
		Verdict:   verdictFor(state, kind == EvidenceStrongFake, cfg),
		Kind:      kind,
		Final:     ev.Final,
		SwapGuard: swapped,
	}
	out.Tag = debugTagFor(ev, kind, swapped, cfg)
	out.State = stateFor(out.Verdict)
	state.State = out.State
	return state, out
}

// CurrentVerdict reports the verdict the state supports without new evidence.
func CurrentVerdict(state entities.DecisionState, cfg DecisionConfig) entities.Verdict {
	return verdictFor(state, false, cfg)
}

// ResetDecision returns the initial decision state.
func ResetDecision() entities.DecisionState {
	return entities.DecisionState{State: entities.StateIdle}
}

func verdictFor(state entities.DecisionState, strongFake bool, cfg DecisionConfig) entities.Verdict {
	if strongFake || state.SpoofConsecutive >= cfg.MinSpoofFrames {
		return entities.VerdictSpoof
	}
	if state.RealConsecutive >= cfg.MinRealFrames && state.ConfidenceAccumulator >= cfg.MinConfidence {
		return entities.VerdictReal
	}
	return entities.VerdictUncertain
}

func stateFor(v entities.Verdict) entities.EngineState {
	switch v {
	case entities.VerdictReal:
		return entities.StateRealLocked
	case entities.VerdictSpoof:
		return entities.StateSpoofFlagged
	}
	return entities.StateAnalyzing
}

func debugTagFor(ev Evidence, kind EvidenceKind, swapped bool, cfg DecisionConfig) entities.DebugTag {
	switch {
	case swapped:
		return entities.TagSwapAttackGuard
	case kind == EvidenceStrongFake:
		return entities.TagStrongFakeOverride
	case kind == EvidenceWeakFake:
		return entities.TagWeakFake
	case kind == EvidenceStrongReal:
		return entities.TagClassifierDirectPass
	case kind == EvidenceWeakReal:
		if ev.Adjustment >= cfg.RescueAdjustment && ev.Raw < cfg.StrongReal.Raw {
			return entities.TagHeuristicRescued
		}
		return entities.TagClassifierWeakPass
	case ev.Raw >= cfg.WeakReal.Raw:
		// the classifier alone would have passed this frame
		return entities.TagHeuristicRejected
	}
	return entities.TagInsufficientEvidence
}

// Progress is the fraction of the real-frame minimum reached, capped at 1.
func Progress(state entities.DecisionState, cfg DecisionConfig) float64 {
	if cfg.MinRealFrames <= 0 {
		return 0
	}
	return math.Min(1, float64(state.RealConsecutive)/float64(cfg.MinRealFrames))
}
