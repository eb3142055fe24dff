package dto

type CreateLivenessSessionDTO struct {
	Policy string `json:"policy" validate:"omitempty,liveness_policy"`
}

type SubmitLivenessFrameDTO struct {
	// Image is a base64 JPEG or PNG, optionally as a data URI.
	Image string `json:"image" validate:"required,base64_image"`
}

type SubmitLivenessScoresDTO struct {
	FacePresent bool `json:"face_present"`
	// FaceWidth must be set whenever a face is reported.
	FaceWidth         int     `json:"face_width" validate:"required_if=FacePresent true,gte=0"`
	RawScore          float64 `json:"raw_score" validate:"gte=0,lte=1"`
	QualityAdjustment float64 `json:"quality_adjustment" validate:"gte=-1,lte=1"`
}
