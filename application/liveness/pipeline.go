package liveness

import (
	"context"

	"faceguard.io/entities"
	"faceguard.io/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

// QualityAnalyzer scores the physical plausibility of a face crop.
type QualityAnalyzer[C any] interface {
	Analyze(crop C, face entities.FaceObservation) entities.QualityReport
}

// LivenessClassifier returns the probability that the crop shows a live face.
type LivenessClassifier[C any] interface {
	Classify(ctx context.Context, crop C, face entities.FaceObservation) (float64, error)
}

// FrameInput is one frame's detection. Face is nil when nothing was detected.
type FrameInput[C any] struct {
	Face *entities.FaceObservation
	Crop C
}

// Pipeline runs the analyzer and classifier for a frame side by side and feeds
// both into the session once they have finished.
type Pipeline[C any] struct {
	Session    *Session
	analyzer   QualityAnalyzer[C]
	classifier LivenessClassifier[C]
}

func NewPipeline[C any](session *Session, analyzer QualityAnalyzer[C], classifier LivenessClassifier[C]) *Pipeline[C] {
	return &Pipeline[C]{
		Session:    session,
		analyzer:   analyzer,
		classifier: classifier,
	}
}

func (p *Pipeline[C]) ProcessFrame(ctx context.Context, in FrameInput[C]) entities.FrameResult {
	if in.Face == nil || in.Face.Empty() {
		return p.Session.FaceMissing()
	}
	face := *in.Face
	if face.Width() < p.Session.Config.Session.MinFaceWidth {
		return p.Session.FaceTooSmall()
	}

	var report entities.QualityReport
	var raw float64
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		report = p.analyzer.Analyze(in.Crop, face)
		return nil
	})
	group.Go(func() error {
		score, err := p.classifier.Classify(groupCtx, in.Crop, face)
		if err != nil {
			return err
		}
		raw = score
		return nil
	})
	if err := group.Wait(); err != nil {
		logger.Warning("liveness inference unavailable, skipping frame", logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
		result := p.Session.SkipFrame()
		result.Quality = &report
		return result
	}

	if !report.Valid {
		logger.Debug("quality analyzer rejected crop", logger.LoggerOptions{
			Key:  "reasons",
			Data: report.Reasons,
		})
		result := p.Session.DiscardFrame()
		result.Quality = &report
		return result
	}

	result := p.Session.Observe(raw, report.Adjustment)
	result.Quality = &report
	return result
}
