package biometric

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"sync"
	"time"

	"faceguard.io/entities"
	"faceguard.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

var ErrClassifierUnavailable = errors.New("liveness classifier model not loaded")

// ONNXClassifier runs a binary anti-spoofing network through OpenCV DNN and
// reports the probability of the real class.
type ONNXClassifier struct {
	net             gocv.Net
	inputSize       image.Point
	scale           float64
	mean            gocv.Scalar
	swapRB          bool
	realIndex       int
	applySoftmax    bool
	modelsLoaded    bool
	processingStats ProcessingStats
	mutex           sync.RWMutex
}

// ClassifierConfig holds configuration for the liveness classifier
type ClassifierConfig struct {
	ModelPath string
	InputSize image.Point
	Scale     float64
	Mean      gocv.Scalar
	SwapRB    bool
	// RealIndex is the output position of the "live" class.
	RealIndex int
	// ApplySoftmax is false for models whose graph already ends in softmax.
	ApplySoftmax bool
	Backend      gocv.NetBackendType
	Target       gocv.NetTargetType
}

func GetDefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ModelPath:    "./models/liveness/anti_spoof_80x80.onnx",
		InputSize:    image.Pt(80, 80),
		Scale:        1.0 / 255.0,
		Mean:         gocv.NewScalar(0, 0, 0, 0),
		SwapRB:       true,
		RealIndex:    1,
		ApplySoftmax: true,
		Backend:      gocv.NetBackendDefault,
		Target:       gocv.NetTargetCPU,
	}
}

// NewONNXClassifier creates the classifier. A missing model is logged; every
// Classify call then fails with ErrClassifierUnavailable.
func NewONNXClassifier(config ClassifierConfig) *ONNXClassifier {
	service := &ONNXClassifier{
		inputSize:    config.InputSize,
		scale:        config.Scale,
		mean:         config.Mean,
		swapRB:       config.SwapRB,
		realIndex:    config.RealIndex,
		applySoftmax: config.ApplySoftmax,
	}

	if err := service.loadModel(config); err != nil {
		logger.Error("Failed to load liveness classifier", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return service
	}

	service.modelsLoaded = true
	logger.Info("Liveness classifier initialized successfully")
	return service
}

func (oc *ONNXClassifier) loadModel(config ClassifierConfig) error {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	oc.net = gocv.ReadNet(config.ModelPath, "")
	if oc.net.Empty() {
		return fmt.Errorf("failed to load liveness model from %s", config.ModelPath)
	}
	oc.net.SetPreferableBackend(config.Backend)
	oc.net.SetPreferableTarget(config.Target)

	logger.Info("Liveness model loaded successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path": config.ModelPath,
			"input_size": fmt.Sprintf("%dx%d", config.InputSize.X, config.InputSize.Y),
			"softmax":    config.ApplySoftmax,
			"real_index": config.RealIndex,
			"backend":    config.Backend.String(),
			"target":     config.Target.String(),
		},
	})
	return nil
}

// Classify implements liveness.LivenessClassifier for gocv face crops.
func (oc *ONNXClassifier) Classify(ctx context.Context, crop *FaceCrop, face entities.FaceObservation) (float64, error) {
	if oc == nil || !oc.modelsLoaded {
		return 0, ErrClassifierUnavailable
	}
	if crop == nil || crop.Window.Empty() {
		return 0, fmt.Errorf("classify: %w", ErrEmptyCrop)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	oc.mutex.Lock()
	defer oc.mutex.Unlock()

	startTime := time.Now()
	blob := gocv.BlobFromImage(crop.Window, oc.scale, oc.inputSize, oc.mean, oc.swapRB, false)
	defer blob.Close()

	oc.net.SetInput(blob, "")
	output := oc.net.Forward("")
	defer output.Close()

	logits := make([]float64, 0, output.Total())
	flat := output.Reshape(1, 1)
	defer flat.Close()
	for i := 0; i < flat.Cols(); i++ {
		logits = append(logits, float64(flat.GetFloatAt(0, i)))
	}

	score, err := realProbability(logits, oc.realIndex, oc.applySoftmax)
	oc.processingStats.record(time.Since(startTime), err == nil)
	if err != nil {
		return 0, fmt.Errorf("classify: %w", err)
	}
	return score, nil
}

// realProbability returns the probability at realIndex. Raw logits go through
// a numerically stable softmax; probabilities are only clamped.
func realProbability(logits []float64, realIndex int, applySoftmax bool) (float64, error) {
	if realIndex < 0 || realIndex >= len(logits) {
		return 0, fmt.Errorf("real index %d outside %d model outputs", realIndex, len(logits))
	}
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.New("model produced a non-finite output")
		}
		maxLogit = math.Max(maxLogit, v)
	}
	if !applySoftmax {
		return math.Min(1, math.Max(0, logits[realIndex])), nil
	}
	sum := 0.0
	for _, v := range logits {
		sum += math.Exp(v - maxLogit)
	}
	return math.Exp(logits[realIndex]-maxLogit) / sum, nil
}

func (oc *ONNXClassifier) GetStats() ProcessingStats {
	oc.mutex.RLock()
	defer oc.mutex.RUnlock()
	return oc.processingStats
}

func (oc *ONNXClassifier) IsHealthy() bool {
	return oc != nil && oc.modelsLoaded
}

func (oc *ONNXClassifier) Close() error {
	oc.mutex.Lock()
	defer oc.mutex.Unlock()
	if !oc.modelsLoaded {
		return nil
	}
	oc.modelsLoaded = false
	return oc.net.Close()
}
