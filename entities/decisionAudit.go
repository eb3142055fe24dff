package entities

import (
	"time"

	"faceguard.io/application/utils"
)

// DecisionAuditEntry records a verdict transition for later review.
type DecisionAuditEntry struct {
	ID                    string    `json:"id"`
	SessionID             string    `json:"sessionID"`
	FrameIndex            int64     `json:"frameIndex"`
	PreviousVerdict       Verdict   `json:"previousVerdict"`
	Verdict               Verdict   `json:"verdict"`
	DebugTag              DebugTag  `json:"debugTag"`
	RawScore              float64   `json:"rawScore"`
	FinalScore            float64   `json:"finalScore"`
	QualityAdjustment     float64   `json:"qualityAdjustment"`
	RealConsecutive       int       `json:"realConsecutive"`
	SpoofConsecutive      int       `json:"spoofConsecutive"`
	ConfidenceAccumulator float64   `json:"confidenceAccumulator"`
	CreatedAt             time.Time `json:"createdAt"`
}

func (e DecisionAuditEntry) ParseModel() any {
	if e.ID == "" {
		e.ID = utils.GenerateULIDString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return &e
}
