package biometric

import (
	"math"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
)

// PoseMetrics derives a yaw proxy and a pitch ratio from the five detector
// landmarks. ok is false when the geometry is degenerate.
func PoseMetrics(face entities.FaceObservation) (yaw float64, pitchRatio float64, ok bool) {
	if !face.HasLandmarks {
		return 0, 0, false
	}
	lm := face.Landmarks
	rightEye, leftEye := lm[entities.LandmarkRightEye], lm[entities.LandmarkLeftEye]
	nose := lm[entities.LandmarkNose]
	rightMouth, leftMouth := lm[entities.LandmarkRightMouth], lm[entities.LandmarkLeftMouth]

	eyeMidX := float64(rightEye.X+leftEye.X) / 2
	eyeMidY := float64(rightEye.Y+leftEye.Y) / 2
	mouthMidY := float64(rightMouth.Y+leftMouth.Y) / 2
	interocular := math.Hypot(float64(leftEye.X-rightEye.X), float64(leftEye.Y-rightEye.Y))
	faceHeight := mouthMidY - eyeMidY
	if interocular < 1 || faceHeight < 1 {
		return 0, 0, false
	}

	yaw = (float64(nose.X) - eyeMidX) / interocular
	pitchRatio = (float64(nose.Y) - eyeMidY) / faceHeight
	return yaw, pitchRatio, true
}

// poseScore penalises heads turned or tilted too far for the other heuristics
// to be trusted.
func poseScore(face entities.FaceObservation, cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	yaw, pitch, ok := PoseMetrics(face)
	if !ok {
		return 0
	}
	m.Yaw = yaw
	m.PitchRatio = pitch
	if math.Abs(yaw) > cfg.MaxYaw || pitch < cfg.PitchRatioMin || pitch > cfg.PitchRatioMax {
		return f.flag("pose_extreme", -0.05)
	}
	return 0
}
