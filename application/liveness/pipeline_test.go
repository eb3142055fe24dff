package liveness

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"faceguard.io/entities"
	"github.com/stretchr/testify/assert"
)

type fakeCrop struct {
	raw        float64
	adjustment float64
	valid      bool
	err        error
}

type fakeAnalyzer struct {
	calls atomic.Int32
}

func (a *fakeAnalyzer) Analyze(crop fakeCrop, _ entities.FaceObservation) entities.QualityReport {
	a.calls.Add(1)
	return entities.QualityReport{Adjustment: crop.adjustment, Valid: crop.valid}
}

type fakeClassifier struct {
	calls atomic.Int32
}

func (c *fakeClassifier) Classify(_ context.Context, crop fakeCrop, _ entities.FaceObservation) (float64, error) {
	c.calls.Add(1)
	return crop.raw, crop.err
}

func newTestPipeline() (*Pipeline[fakeCrop], *fakeAnalyzer, *fakeClassifier) {
	analyzer := &fakeAnalyzer{}
	classifier := &fakeClassifier{}
	return NewPipeline[fakeCrop](NewSession(DefaultEngineConfig()), analyzer, classifier), analyzer, classifier
}

func faceInput(crop fakeCrop) FrameInput[fakeCrop] {
	face := entities.FaceObservation{Box: image.Rect(0, 0, 200, 240)}
	return FrameInput[fakeCrop]{Face: &face, Crop: crop}
}

func TestPipelineScoresFrame(t *testing.T) {
	pipeline, analyzer, classifier := newTestPipeline()
	result := pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{raw: 0.9, adjustment: 0.1, valid: true}))

	assert.Equal(t, int32(1), analyzer.calls.Load())
	assert.Equal(t, int32(1), classifier.calls.Load())
	assert.Equal(t, 0.9, result.RawScore)
	assert.Equal(t, 0.1, result.QualityAdjustment)
	assert.Equal(t, entities.TagClassifierDirectPass, result.DebugTag)
	if assert.NotNil(t, result.Quality) {
		assert.True(t, result.Quality.Valid)
	}
}

func TestPipelineNoFace(t *testing.T) {
	pipeline, analyzer, classifier := newTestPipeline()
	result := pipeline.ProcessFrame(context.Background(), FrameInput[fakeCrop]{})
	assert.Equal(t, entities.TagNoFace, result.DebugTag)
	assert.Equal(t, int32(0), analyzer.calls.Load())
	assert.Equal(t, int32(0), classifier.calls.Load())
}

func TestPipelineSmallFaceSkipsInference(t *testing.T) {
	pipeline, _, classifier := newTestPipeline()
	face := entities.FaceObservation{Box: image.Rect(0, 0, 30, 30)}
	result := pipeline.ProcessFrame(context.Background(), FrameInput[fakeCrop]{Face: &face})
	assert.Equal(t, entities.TagFaceTooSmall, result.DebugTag)
	assert.Equal(t, int32(0), classifier.calls.Load())
}

func TestPipelineClassifierFailureIsAFrameSkip(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{raw: 0.9, valid: true}))
	before := *pipeline.Session

	result := pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{valid: true, err: errors.New("model not loaded")}))
	assert.Equal(t, entities.TagInferenceUnavailable, result.DebugTag)
	assert.Equal(t, before.Smoother, pipeline.Session.Smoother)
	assert.Equal(t, before.Decision, pipeline.Session.Decision)
}

func TestPipelineInvalidCropResetsSession(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{raw: 0.9, valid: true}))

	result := pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{raw: 0.9, adjustment: -0.6, valid: false}))
	assert.Equal(t, entities.TagFaceLostReset, result.DebugTag)
	assert.Equal(t, 0, pipeline.Session.Decision.RealConsecutive)
	assert.Equal(t, 0, pipeline.Session.Smoother.Len)
}

type rendezvousAnalyzer struct {
	analyzerStarted   chan struct{}
	classifierStarted chan struct{}
	overlapped        atomic.Bool
}

func (r *rendezvousAnalyzer) Analyze(_ fakeCrop, _ entities.FaceObservation) entities.QualityReport {
	close(r.analyzerStarted)
	select {
	case <-r.classifierStarted:
		r.overlapped.Store(true)
	case <-time.After(2 * time.Second):
	}
	return entities.QualityReport{Valid: true}
}

func (r *rendezvousAnalyzer) Classify(_ context.Context, _ fakeCrop, _ entities.FaceObservation) (float64, error) {
	close(r.classifierStarted)
	select {
	case <-r.analyzerStarted:
	case <-time.After(2 * time.Second):
	}
	return 0.9, nil
}

func TestPipelineRunsAnalyzerAndClassifierConcurrently(t *testing.T) {
	both := &rendezvousAnalyzer{
		analyzerStarted:   make(chan struct{}),
		classifierStarted: make(chan struct{}),
	}
	pipeline := NewPipeline[fakeCrop](NewSession(DefaultEngineConfig()), both, both)
	result := pipeline.ProcessFrame(context.Background(), faceInput(fakeCrop{}))
	assert.True(t, both.overlapped.Load())
	assert.Equal(t, 0.9, result.RawScore)
}
