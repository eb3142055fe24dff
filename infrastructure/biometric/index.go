package biometric

import (
	"faceguard.io/infrastructure/env"
)

var (
	Detector   *YuNetDetector
	Classifier *ONNXClassifier
)

// InitialiseBiometricService loads the detector and classifier models named
// by the environment. Missing models leave the adapters unhealthy; the
// score-driven API keeps working without them.
func InitialiseBiometricService() {
	detectorConfig := GetDefaultYuNetConfig()
	detectorConfig.ModelPath = env.GetString("YUNET_MODEL_PATH", detectorConfig.ModelPath)
	Detector = NewYuNetDetector(detectorConfig)

	classifierConfig := GetDefaultClassifierConfig()
	classifierConfig.ModelPath = env.GetString("LIVENESS_MODEL_PATH", classifierConfig.ModelPath)
	classifierConfig.RealIndex = env.GetInt("LIVENESS_REAL_INDEX", classifierConfig.RealIndex)
	classifierConfig.ApplySoftmax = env.GetBool("LIVENESS_OUTPUT_SOFTMAX", classifierConfig.ApplySoftmax)
	Classifier = NewONNXClassifier(classifierConfig)
}

// CloseBiometricService releases the loaded models.
func CloseBiometricService() {
	if Detector != nil {
		Detector.Close()
	}
	if Classifier != nil {
		Classifier.Close()
	}
}

// ServiceStatus reports whether each model is loaded and how it has performed
// since start up.
type ServiceStatus struct {
	DetectorHealthy   bool            `json:"detectorHealthy"`
	ClassifierHealthy bool            `json:"classifierHealthy"`
	Detector          ProcessingStats `json:"detector"`
	Classifier        ProcessingStats `json:"classifier"`
}

func Status() ServiceStatus {
	status := ServiceStatus{
		DetectorHealthy:   Detector.IsHealthy(),
		ClassifierHealthy: Classifier.IsHealthy(),
	}
	if Detector != nil {
		status.Detector = Detector.GetStats()
	}
	if Classifier != nil {
		status.Classifier = Classifier.GetStats()
	}
	return status
}
