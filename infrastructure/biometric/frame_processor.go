package biometric

import (
	"context"
	"errors"
	"fmt"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"faceguard.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

var ErrUndecodableFrame = errors.New("frame is not a decodable image")

// FaceDetector locates the dominant face in a BGR frame. A nil observation
// with a nil error means no face was found.
type FaceDetector interface {
	Detect(img gocv.Mat) (*entities.FaceObservation, error)
}

// FrameProcessor turns encoded camera frames into pipeline input: decode,
// detect, crop.
type FrameProcessor struct {
	detector    FaceDetector
	windowScale float64
}

func NewFrameProcessor(detector FaceDetector, windowScale float64) *FrameProcessor {
	return &FrameProcessor{detector: detector, windowScale: windowScale}
}

// ProcessImage decodes a JPEG or PNG payload and runs it through the pipeline.
func (fp *FrameProcessor) ProcessImage(ctx context.Context, pipeline *liveness.Pipeline[*FaceCrop], payload []byte) (entities.FrameResult, error) {
	frame, err := gocv.IMDecode(payload, gocv.IMReadColor)
	if err != nil {
		return entities.FrameResult{}, fmt.Errorf("%w: %v", ErrUndecodableFrame, err)
	}
	defer frame.Close()
	if frame.Empty() {
		return entities.FrameResult{}, ErrUndecodableFrame
	}
	return fp.ProcessMat(ctx, pipeline, frame)
}

// ProcessMat runs detection and cropping on a decoded frame and feeds the
// pipeline. Detector failures are returned; everything past detection maps
// to a deterministic frame result.
func (fp *FrameProcessor) ProcessMat(ctx context.Context, pipeline *liveness.Pipeline[*FaceCrop], frame gocv.Mat) (entities.FrameResult, error) {
	if fp.detector == nil {
		return entities.FrameResult{}, ErrDetectorUnavailable
	}
	face, err := fp.detector.Detect(frame)
	if err != nil {
		return entities.FrameResult{}, fmt.Errorf("detect face: %w", err)
	}
	if face == nil {
		return pipeline.ProcessFrame(ctx, liveness.FrameInput[*FaceCrop]{}), nil
	}

	crop, err := CropFace(frame, *face, fp.windowScale)
	if err != nil {
		return pipeline.ProcessFrame(ctx, liveness.FrameInput[*FaceCrop]{}), nil
	}
	defer crop.Close()

	return pipeline.ProcessFrame(ctx, liveness.FrameInput[*FaceCrop]{
		Face: face,
		Crop: crop,
	}), nil
}

// SessionEngine binds the shared detector and classifier to one session. It
// owns the session's quality analyzer and therefore its Workspace.
type SessionEngine struct {
	processor *FrameProcessor
	analyzer  *QualityAnalyzer
	pipeline  *liveness.Pipeline[*FaceCrop]
}

func NewSessionEngine(session *liveness.Session, detector FaceDetector, classifier liveness.LivenessClassifier[*FaceCrop]) *SessionEngine {
	analyzer := NewQualityAnalyzer(session.Config.Heuristics)
	return &SessionEngine{
		processor: NewFrameProcessor(detector, session.Config.Heuristics.WindowScale),
		analyzer:  analyzer,
		pipeline:  liveness.NewPipeline[*FaceCrop](session, analyzer, classifier),
	}
}

func (se *SessionEngine) Process(ctx context.Context, payload []byte) (entities.FrameResult, error) {
	return se.processor.ProcessImage(ctx, se.pipeline, payload)
}

// Stats returns the quality analyzer's counters for this session.
func (se *SessionEngine) Stats() ProcessingStats {
	return se.analyzer.GetStats()
}

func (se *SessionEngine) Close() {
	logger.Debug("session engine closed", logger.LoggerOptions{
		Key:  "analyzer_stats",
		Data: se.Stats(),
	})
	se.analyzer.Close()
}
