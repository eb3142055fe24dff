package liveness

import (
	"faceguard.io/entities"
)

// Session owns the cross-frame state of one tracked face stream. It is not
// safe for concurrent use; frames must be fed in arrival order by one owner.
type Session struct {
	Config   EngineConfig
	Smoother entities.SmootherState
	Decision entities.DecisionState
}

func NewSession(cfg EngineConfig) *Session {
	return &Session{
		Config:   cfg,
		Smoother: ResetSmoother(),
		Decision: ResetDecision(),
	}
}

// Observe scores a frame whose face passed the size gate.
func (s *Session) Observe(raw, adjustment float64) entities.FrameResult {
	smoother, smoothed := Smooth(s.Smoother, raw, s.Config.Smoother)
	fused := FuseDetailed(smoothed, adjustment, s.Config.Fusion)
	decision, out := Decide(s.Decision, Evidence{
		Final:      fused.Score,
		Raw:        raw,
		Adjustment: adjustment,
	}, s.Config.Decision)
	s.Smoother, s.Decision = smoother, decision

	result := s.result(out.Verdict, out.State, out.Tag)
	result.RawScore = clampUnit(finite(raw, 0))
	result.SmoothedScore = smoothed
	result.FinalScore = out.Final
	result.QualityAdjustment = finite(adjustment, 0)
	result.PenaltyTier = fused.Tier
	return result
}

// ObserveFace applies the minimum face width gate before scoring.
func (s *Session) ObserveFace(face entities.FaceObservation, raw, adjustment float64) entities.FrameResult {
	if face.Empty() {
		return s.FaceMissing()
	}
	if face.Width() < s.Config.Session.MinFaceWidth {
		return s.FaceTooSmall()
	}
	return s.Observe(raw, adjustment)
}

// FaceMissing holds the state for a few frames and resets it once the face
// has been gone for more than MaxMissingFrames.
func (s *Session) FaceMissing() entities.FrameResult {
	s.Decision.MissingFaceCounter++
	if s.Decision.MissingFaceCounter > s.Config.Session.MaxMissingFrames {
		s.resetAll()
		return s.result(entities.VerdictUncertain, entities.StateIdle, entities.TagFaceLostReset)
	}
	s.Decision.State = entities.StateIdle
	return s.result(entities.VerdictUncertain, entities.StateIdle, entities.TagNoFace)
}

// FaceTooSmall resets the session; nothing is scored until the face grows.
func (s *Session) FaceTooSmall() entities.FrameResult {
	s.resetAll()
	s.Decision.State = entities.StateSizeCheckPending
	return s.result(entities.VerdictUncertain, entities.StateSizeCheckPending, entities.TagFaceTooSmall)
}

// SkipFrame reports the current verdict without advancing any state. Used when
// classifier inference is unavailable for this frame.
func (s *Session) SkipFrame() entities.FrameResult {
	state := s.Decision.State
	if state == "" || state == entities.StateIdle || state == entities.StateSizeCheckPending {
		state = entities.StateAnalyzing
	}
	return s.result(CurrentVerdict(s.Decision, s.Config.Decision), state, entities.TagInferenceUnavailable)
}

// DiscardFrame treats an unusable crop like a lost face and starts over.
func (s *Session) DiscardFrame() entities.FrameResult {
	s.resetAll()
	return s.result(entities.VerdictUncertain, entities.StateIdle, entities.TagFaceLostReset)
}

// Reset clears every counter and the smoother history.
func (s *Session) Reset() entities.FrameResult {
	s.resetAll()
	return s.result(entities.VerdictUncertain, entities.StateIdle, entities.TagManualReset)
}

// Snapshot returns copies of the cross-frame state for persistence.
func (s *Session) Snapshot() (entities.SmootherState, entities.DecisionState) {
	return s.Smoother, s.Decision
}

// Restore replaces the session state with a snapshot.
func (s *Session) Restore(smoother entities.SmootherState, decision entities.DecisionState) {
	if smoother.Len < 0 || smoother.Len > entities.SmootherCapacity {
		smoother = ResetSmoother()
	}
	if decision.State == "" {
		decision.State = entities.StateIdle
	}
	s.Smoother, s.Decision = smoother, decision
}

func (s *Session) resetAll() {
	s.Smoother = ResetSmoother()
	s.Decision = ResetDecision()
}

func (s *Session) result(verdict entities.Verdict, state entities.EngineState, tag entities.DebugTag) entities.FrameResult {
	label, color := state.Presentation()
	return entities.FrameResult{
		Verdict:               verdict,
		State:                 state,
		Label:                 label,
		Color:                 color,
		DebugTag:              tag,
		RealConsecutive:       s.Decision.RealConsecutive,
		SpoofConsecutive:      s.Decision.SpoofConsecutive,
		ConfidenceAccumulator: s.Decision.ConfidenceAccumulator,
		Progress:              Progress(s.Decision, s.Config.Decision),
	}
}
