package entities

// SmootherCapacity is the fixed length of the smoothing window.
const SmootherCapacity = 8

// SmootherState is the temporal smoother's memory. History holds the newest
// Len raw scores, oldest first.
type SmootherState struct {
	History             [SmootherCapacity]float64 `json:"history"`
	Len                 int                       `json:"len"`
	PreviousScore       float64                   `json:"previousScore"`
	HasPrevious         bool                      `json:"hasPrevious"`
	ConsecutiveLowCount int                       `json:"consecutiveLowCount"`
}

// Values returns the populated part of the history.
func (s SmootherState) Values() []float64 {
	return s.History[:s.Len]
}

// DecisionState is the decision state machine's memory. LastRealScore is
// only meaningful while HasLastReal is set.
type DecisionState struct {
	RealConsecutive       int         `json:"realConsecutive"`
	SpoofConsecutive      int         `json:"spoofConsecutive"`
	ConfidenceAccumulator float64     `json:"confidenceAccumulator"`
	LastRealScore         float64     `json:"lastRealScore"`
	HasLastReal           bool        `json:"hasLastReal"`
	SuddenDropCount       int         `json:"suddenDropCount"`
	MissingFaceCounter    int         `json:"missingFaceCounter"`
	State                 EngineState `json:"state"`
}
