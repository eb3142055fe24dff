package biometric

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"faceguard.io/entities"
	"faceguard.io/infrastructure/logger"
	"gocv.io/x/gocv"
)

var ErrDetectorUnavailable = errors.New("face detector model not loaded")

// YuNetDetector finds the dominant face in a frame using YuNet
type YuNetDetector struct {
	detector            gocv.FaceDetectorYN
	inputSize           image.Point
	confidenceThreshold float32
	nmsThreshold        float32
	topK                int
	modelsLoaded        bool
	processingStats     ProcessingStats
	mutex               sync.RWMutex
}

// YuNetConfig holds configuration for the YuNet detector
type YuNetConfig struct {
	ModelPath           string
	InputSize           image.Point
	ConfidenceThreshold float32
	NMSThreshold        float32
	TopK                int
	Backend             gocv.NetBackendType
	Target              gocv.NetTargetType
}

// GetDefaultYuNetConfig returns the detector settings used for 640x480 webcam frames
func GetDefaultYuNetConfig() YuNetConfig {
	return YuNetConfig{
		ModelPath:           "./models/yunet/face_detection_yunet_2023mar.onnx",
		InputSize:           image.Pt(640, 480),
		ConfidenceThreshold: 0.6,
		NMSThreshold:        0.3,
		TopK:                5000,
		Backend:             gocv.NetBackendDefault,
		Target:              gocv.NetTargetCPU,
	}
}

// NewYuNetDetector creates a detector. A missing model is logged and leaves
// the detector unhealthy rather than failing start up.
func NewYuNetDetector(config YuNetConfig) *YuNetDetector {
	service := &YuNetDetector{
		inputSize:           config.InputSize,
		confidenceThreshold: config.ConfidenceThreshold,
		nmsThreshold:        config.NMSThreshold,
		topK:                config.TopK,
	}

	if err := service.loadModel(config); err != nil {
		logger.Error("Failed to load YuNet model", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return service
	}

	service.modelsLoaded = true
	logger.Info("YuNet face detector initialized successfully")
	return service
}

func (yd *YuNetDetector) loadModel(config YuNetConfig) error {
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	detector := gocv.NewFaceDetectorYN(config.ModelPath, "", config.InputSize)
	detector.SetScoreThreshold(config.ConfidenceThreshold)
	detector.SetNMSThreshold(config.NMSThreshold)
	detector.SetTopK(config.TopK)
	yd.detector = detector

	logger.Info("YuNet model loaded successfully", logger.LoggerOptions{
		Key: "model_info",
		Data: map[string]interface{}{
			"model_path":           config.ModelPath,
			"input_size":           fmt.Sprintf("%dx%d", config.InputSize.X, config.InputSize.Y),
			"confidence_threshold": config.ConfidenceThreshold,
			"nms_threshold":        config.NMSThreshold,
			"top_k":                config.TopK,
		},
	})

	return nil
}

// Detect returns the largest face in img clipped to the frame, or nil when
// no face passes the confidence threshold.
func (yd *YuNetDetector) Detect(img gocv.Mat) (*entities.FaceObservation, error) {
	startTime := time.Now()

	if yd == nil || !yd.modelsLoaded {
		return nil, ErrDetectorUnavailable
	}
	if img.Empty() {
		return nil, fmt.Errorf("detect faces: empty frame")
	}

	yd.mutex.Lock()
	defer yd.mutex.Unlock()

	yd.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	facesMat := gocv.NewMat()
	defer facesMat.Close()
	yd.detector.Detect(img, &facesMat)

	faces := parseDetections(facesMat, image.Rect(0, 0, img.Cols(), img.Rows()))
	face := largestFace(faces)

	processingTime := time.Since(startTime)
	yd.processingStats.record(processingTime, face != nil)

	logger.Debug("YuNet face detection completed", logger.LoggerOptions{
		Key: "detection_result",
		Data: map[string]interface{}{
			"faces_detected":     len(faces),
			"processing_time_ms": processingTime.Milliseconds(),
		},
	})

	return face, nil
}

// parseDetections reads YuNet rows
// [x, y, w, h, x_re, y_re, x_le, y_le, x_nt, y_nt, x_rcm, y_rcm, x_lcm, y_lcm, score]
// and clips each box to bounds. Boxes entirely outside the frame are dropped.
func parseDetections(facesMat gocv.Mat, bounds image.Rectangle) []entities.FaceObservation {
	if facesMat.Empty() || facesMat.Rows() == 0 || facesMat.Cols() < 15 {
		return nil
	}

	var faces []entities.FaceObservation
	for i := 0; i < facesMat.Rows(); i++ {
		x := int(facesMat.GetFloatAt(i, 0))
		y := int(facesMat.GetFloatAt(i, 1))
		w := int(facesMat.GetFloatAt(i, 2))
		h := int(facesMat.GetFloatAt(i, 3))

		face := entities.FaceObservation{
			Box:          image.Rect(x, y, x+w, y+h),
			Confidence:   facesMat.GetFloatAt(i, 14),
			HasLandmarks: true,
		}
		for l := 0; l < len(face.Landmarks); l++ {
			face.Landmarks[l] = image.Pt(
				int(facesMat.GetFloatAt(i, 4+2*l)),
				int(facesMat.GetFloatAt(i, 5+2*l)),
			)
		}

		face = face.Clip(bounds)
		if face.Empty() {
			continue
		}
		faces = append(faces, face)
	}
	return faces
}

// largestFace picks the face with the biggest area, preferring the higher
// confidence on ties.
func largestFace(faces []entities.FaceObservation) *entities.FaceObservation {
	var best *entities.FaceObservation
	bestArea := 0
	for i := range faces {
		area := faces[i].Box.Dx() * faces[i].Box.Dy()
		if best == nil || area > bestArea || (area == bestArea && faces[i].Confidence > best.Confidence) {
			best = &faces[i]
			bestArea = area
		}
	}
	return best
}

// GetStats returns processing statistics
func (yd *YuNetDetector) GetStats() ProcessingStats {
	yd.mutex.RLock()
	defer yd.mutex.RUnlock()
	return yd.processingStats
}

func (yd *YuNetDetector) IsHealthy() bool {
	return yd != nil && yd.modelsLoaded
}

func (yd *YuNetDetector) Close() {
	yd.mutex.Lock()
	defer yd.mutex.Unlock()
	if yd.modelsLoaded {
		yd.detector.Close()
		yd.modelsLoaded = false
	}
}
