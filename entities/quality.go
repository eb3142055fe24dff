package entities

// QualityBreakdown holds the signed, weighted contribution of each heuristic.
type QualityBreakdown struct {
	Texture          float64 `json:"texture"`
	Moire            float64 `json:"moire"`
	Spectral         float64 `json:"spectral"`
	Chroma           float64 `json:"chroma"`
	ColorTemperature float64 `json:"colorTemperature"`
	ScreenEdge       float64 `json:"screenEdge"`
	Pose             float64 `json:"pose"`
}

func (b QualityBreakdown) Sum() float64 {
	return b.Texture + b.Moire + b.Spectral + b.Chroma + b.ColorTemperature + b.ScreenEdge + b.Pose
}

// QualityMetrics are the raw measurements behind the breakdown.
type QualityMetrics struct {
	GradientMean      float64 `json:"gradientMean"`
	GradientRatio     float64 `json:"gradientRatio"`
	LaplacianVariance float64 `json:"laplacianVariance"`
	SpectralEnergy    float64 `json:"spectralEnergy"`
	MeanCr            float64 `json:"meanCr"`
	MeanCb            float64 `json:"meanCb"`
	LumaContrast      float64 `json:"lumaContrast"`
	MeanSaturation    float64 `json:"meanSaturation"`
	RedGreenRatio     float64 `json:"redGreenRatio"`
	GreenBlueRatio    float64 `json:"greenBlueRatio"`
	Brightness        float64 `json:"brightness"`
	BorderEdgeDensity float64 `json:"borderEdgeDensity"`
	Yaw               float64 `json:"yaw"`
	PitchRatio        float64 `json:"pitchRatio"`
}

// QualityReport is the analyzer output for one face crop. Adjustment is the
// clamped sum of the breakdown; Valid is false for empty crops.
type QualityReport struct {
	Adjustment float64          `json:"adjustment"`
	Valid      bool             `json:"valid"`
	Breakdown  QualityBreakdown `json:"breakdown"`
	Metrics    QualityMetrics   `json:"metrics"`
	Reasons    []string         `json:"reasons,omitempty"`
}
