package biometric

import (
	"image"
	"testing"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"github.com/stretchr/testify/assert"
)

func frontalFace() entities.FaceObservation {
	return entities.FaceObservation{
		Box: image.Rect(20, 20, 100, 120),
		Landmarks: [5]image.Point{
			{X: 40, Y: 50}, // right eye
			{X: 80, Y: 50}, // left eye
			{X: 60, Y: 70}, // nose
			{X: 45, Y: 90}, // right mouth
			{X: 75, Y: 90}, // left mouth
		},
		HasLandmarks: true,
	}
}

func turnedFace() entities.FaceObservation {
	face := frontalFace()
	face.Landmarks[entities.LandmarkNose] = image.Pt(80, 70)
	return face
}

func TestPoseMetricsFrontal(t *testing.T) {
	yaw, pitch, ok := PoseMetrics(frontalFace())
	assert.True(t, ok)
	assert.InDelta(t, 0, yaw, 1e-9)
	assert.InDelta(t, 0.5, pitch, 1e-9)
}

func TestPoseMetricsDegenerate(t *testing.T) {
	_, _, ok := PoseMetrics(entities.FaceObservation{Box: image.Rect(0, 0, 10, 10)})
	assert.False(t, ok, "no landmarks")

	collapsed := frontalFace()
	collapsed.Landmarks[entities.LandmarkLeftEye] = collapsed.Landmarks[entities.LandmarkRightEye]
	_, _, ok = PoseMetrics(collapsed)
	assert.False(t, ok, "zero interocular distance")
}

func TestPoseScore(t *testing.T) {
	cfg := liveness.DefaultHeuristicConfig()

	tests := []struct {
		name string
		face entities.FaceObservation
		want float64
	}{
		{"frontal", frontalFace(), 0},
		{"turned", turnedFace(), -0.05},
		{"looking down", func() entities.FaceObservation {
			f := frontalFace()
			f.Landmarks[entities.LandmarkNose] = image.Pt(60, 86)
			return f
		}(), -0.05},
		{"no landmarks", entities.FaceObservation{Box: image.Rect(0, 0, 90, 90)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m entities.QualityMetrics
			f := &findings{}
			assert.InDelta(t, tt.want, poseScore(tt.face, cfg, &m, f), 1e-9)
			if tt.want < 0 {
				assert.Equal(t, []string{"pose_extreme"}, f.reasons)
			}
		})
	}
}
