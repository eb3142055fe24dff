package biometric

import (
	"image"
	"testing"

	"faceguard.io/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidFrame(rows, cols int, value float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func TestCropFaceInsideFrame(t *testing.T) {
	frame := solidFrame(100, 100, 60)
	defer frame.Close()

	crop, err := CropFace(frame, entities.FaceObservation{Box: image.Rect(40, 40, 60, 60)}, 1.8)
	require.NoError(t, err)
	defer crop.Close()

	assert.Equal(t, 36, crop.Window.Cols())
	assert.Equal(t, 36, crop.Window.Rows())
	assert.Equal(t, image.Rect(8, 8, 28, 28), crop.Face)
}

func TestCropFacePadsAtFrameEdge(t *testing.T) {
	frame := solidFrame(100, 100, 200)
	defer frame.Close()

	face := entities.FaceObservation{Box: image.Rect(80, 80, 100, 100)}
	crop, err := CropFace(frame, face, 1.8)
	require.NoError(t, err)
	defer crop.Close()

	window := face.AnalysisWindow(1.8)
	assert.Equal(t, window.Dx(), crop.Window.Cols())
	assert.Equal(t, window.Dy(), crop.Window.Rows())
	assert.Equal(t, image.Rect(8, 8, 28, 28), crop.Face)

	// replicated border pixels carry the frame edge value
	assert.Equal(t, uint8(200), crop.Window.GetUCharAt(35, 35*3))
}

func TestCropFaceClipsOversizedBox(t *testing.T) {
	frame := solidFrame(60, 80, 10)
	defer frame.Close()

	crop, err := CropFace(frame, entities.FaceObservation{Box: image.Rect(-20, -20, 40, 40)}, 1.5)
	require.NoError(t, err)
	defer crop.Close()

	assert.False(t, crop.Window.Empty())
	assert.Equal(t, 40, crop.Face.Dx())
	assert.Equal(t, 40, crop.Face.Dy())
}

func TestCropFaceOutsideFrame(t *testing.T) {
	frame := solidFrame(50, 50, 0)
	defer frame.Close()

	crop, err := CropFace(frame, entities.FaceObservation{Box: image.Rect(60, 60, 90, 90)}, 1.8)
	assert.ErrorIs(t, err, ErrEmptyCrop)
	assert.Nil(t, crop)
}
