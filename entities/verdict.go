package entities

type Verdict string

const (
	VerdictReal      Verdict = "REAL"
	VerdictSpoof     Verdict = "SPOOF"
	VerdictUncertain Verdict = "UNCERTAIN"
)

type EngineState string

const (
	StateIdle             EngineState = "IDLE"
	StateSizeCheckPending EngineState = "TOO_CLOSE_CHECK_PENDING"
	StateAnalyzing        EngineState = "ANALYZING"
	StateRealLocked       EngineState = "REAL_LOCKED"
	StateSpoofFlagged     EngineState = "SPOOF_FLAGGED"
)

// DebugTag names the branch of the decision logic that produced a result.
type DebugTag string

const (
	TagClassifierDirectPass DebugTag = "classifier_direct_pass"
	TagClassifierWeakPass   DebugTag = "classifier_weak_pass"
	TagHeuristicRescued     DebugTag = "heuristic_rescued_pass"
	TagHeuristicRejected    DebugTag = "heuristic_rejected"
	TagStrongFakeOverride   DebugTag = "strong_fake_override"
	TagWeakFake             DebugTag = "weak_fake"
	TagSwapAttackGuard      DebugTag = "swap_attack_guard"
	TagInsufficientEvidence DebugTag = "insufficient_evidence"
	TagNoFace               DebugTag = "no_face"
	TagFaceLostReset        DebugTag = "face_lost_reset"
	TagFaceTooSmall         DebugTag = "face_too_small"
	TagInferenceUnavailable DebugTag = "inference_unavailable"
	TagManualReset          DebugTag = "manual_reset"
)

// UI colours, hex RGB.
const (
	ColorIdle      = "#C8C8C8"
	ColorVerifying = "#FFFF00"
	ColorReal      = "#00FF00"
	ColorSpoof     = "#FF0000"
	ColorWarning   = "#FFA500"
)

// FrameResult is everything the engine reports for one processed frame.
type FrameResult struct {
	Verdict               Verdict        `json:"verdict"`
	State                 EngineState    `json:"state"`
	Label                 string         `json:"label"`
	Color                 string         `json:"color"`
	DebugTag              DebugTag       `json:"debugTag"`
	RawScore              float64        `json:"rawScore"`
	SmoothedScore         float64        `json:"smoothedScore"`
	FinalScore            float64        `json:"finalScore"`
	QualityAdjustment     float64        `json:"qualityAdjustment"`
	PenaltyTier           string         `json:"penaltyTier,omitempty"`
	RealConsecutive       int            `json:"realConsecutive"`
	SpoofConsecutive      int            `json:"spoofConsecutive"`
	ConfidenceAccumulator float64        `json:"confidenceAccumulator"`
	Progress              float64        `json:"progress"`
	Quality               *QualityReport `json:"quality,omitempty"`
}

// Presentation returns the label and colour shown for a state.
func (s EngineState) Presentation() (string, string) {
	switch s {
	case StateSizeCheckPending:
		return "MOVE CLOSER", ColorWarning
	case StateAnalyzing:
		return "VERIFYING", ColorVerifying
	case StateRealLocked:
		return "REAL", ColorReal
	case StateSpoofFlagged:
		return "SPOOF", ColorSpoof
	default:
		return "SHOW YOUR FACE", ColorIdle
	}
}
