package entities

import (
	"time"

	"faceguard.io/application/utils"
)

// LivenessSession is the persisted snapshot of one verification session.
type LivenessSession struct {
	ID              string        `json:"id"`
	Policy          string        `json:"policy"`
	FramesProcessed int64         `json:"framesProcessed"`
	Smoother        SmootherState `json:"smoother"`
	Decision        DecisionState `json:"decision"`
	LastResult      *FrameResult  `json:"lastResult"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (model LivenessSession) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
