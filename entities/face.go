package entities

import "image"

// Landmark indices into FaceObservation.Landmarks, in detector output order.
const (
	LandmarkRightEye = iota
	LandmarkLeftEye
	LandmarkNose
	LandmarkRightMouth
	LandmarkLeftMouth
)

// FaceObservation is a single tracked face as reported by the detector.
// Box is always clipped to the frame it was detected in.
type FaceObservation struct {
	Box        image.Rectangle `json:"box"`
	Landmarks  [5]image.Point  `json:"landmarks"`
	Confidence float32         `json:"confidence"`
	// HasLandmarks is false when the producer could not supply the 5 points.
	HasLandmarks bool `json:"hasLandmarks"`
}

func (f FaceObservation) Width() int {
	return f.Box.Dx()
}

func (f FaceObservation) Empty() bool {
	return f.Box.Empty()
}

// Clip returns a copy of the observation whose box lies inside bounds.
func (f FaceObservation) Clip(bounds image.Rectangle) FaceObservation {
	f.Box = f.Box.Intersect(bounds)
	return f
}

// AnalysisWindow scales the face box around its centre. The result is not
// clipped; callers pad whatever falls outside the frame.
func (f FaceObservation) AnalysisWindow(scale float64) image.Rectangle {
	if f.Box.Empty() || scale <= 0 {
		return image.Rectangle{}
	}
	cx := float64(f.Box.Min.X+f.Box.Max.X) / 2
	cy := float64(f.Box.Min.Y+f.Box.Max.Y) / 2
	halfW := float64(f.Box.Dx()) * scale / 2
	halfH := float64(f.Box.Dy()) * scale / 2
	return image.Rect(
		int(cx-halfW+0.5), int(cy-halfH+0.5),
		int(cx+halfW+0.5), int(cy+halfH+0.5),
	)
}
