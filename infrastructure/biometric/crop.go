package biometric

import (
	"errors"
	"image"
	"image/color"

	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

var ErrEmptyCrop = errors.New("face box does not overlap the frame")

// FaceCrop is the scaled analysis window around a face. Face is the face box
// in window coordinates. The caller owns Window and must Close the crop.
type FaceCrop struct {
	Window gocv.Mat
	Face   image.Rectangle
}

func (c *FaceCrop) Close() {
	if c != nil {
		c.Window.Close()
	}
}

// CropFace cuts the face box scaled by scale out of frame. Parts of the window
// outside the frame are filled by replicating the frame edge, so the window
// always has the scaled size.
func CropFace(frame gocv.Mat, face entities.FaceObservation, scale float64) (*FaceCrop, error) {
	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())
	face = face.Clip(bounds)
	if face.Empty() {
		return nil, ErrEmptyCrop
	}

	window := face.AnalysisWindow(scale)
	inside := window.Intersect(bounds)
	if inside.Empty() {
		return nil, ErrEmptyCrop
	}

	region := frame.Region(inside)
	defer region.Close()

	top := inside.Min.Y - window.Min.Y
	bottom := window.Max.Y - inside.Max.Y
	left := inside.Min.X - window.Min.X
	right := window.Max.X - inside.Max.X

	var out gocv.Mat
	if top == 0 && bottom == 0 && left == 0 && right == 0 {
		out = region.Clone()
	} else {
		out = gocv.NewMat()
		gocv.CopyMakeBorder(region, &out, top, bottom, left, right, gocv.BorderReplicate, color.RGBA{})
	}

	return &FaceCrop{
		Window: out,
		Face:   face.Box.Sub(window.Min),
	}, nil
}
