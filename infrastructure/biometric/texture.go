package biometric

import (
	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

// textureScore rates the Sobel gradient field of the face. Skin has a spread
// of gradient strengths; prints and displays are either flat or uniformly
// sharp.
func (ws *Workspace) textureScore(cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	gocv.Sobel(ws.gray, &ws.gradX, gocv.MatTypeCV32F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(ws.gray, &ws.gradY, gocv.MatTypeCV32F, 0, 1, 3, 1, 0, gocv.BorderDefault)
	gocv.Magnitude(ws.gradX, ws.gradY, &ws.gradMag)

	mean, std := ws.meanStdDev(ws.gradMag)
	ratio := std / (mean + epsilon)
	m.GradientMean = mean
	m.GradientRatio = ratio

	score := 0.0
	if finite(ratio) {
		switch {
		case ratio < cfg.GradientRatioLow:
			score += f.flag("texture_too_uniform", -0.12)
		case ratio > cfg.GradientRatioHigh:
			score += f.flag("texture_irregular", -0.10)
		default:
			score += 0.10
		}
	}
	if finite(mean) {
		switch {
		case mean < cfg.GradientMeanLow:
			score += f.flag("gradient_weak", -0.08)
		case mean > cfg.GradientMeanHigh:
			score += 0.05
		}
	}
	return score
}

// meanStdDev returns the single-channel mean and standard deviation of src.
func (ws *Workspace) meanStdDev(src gocv.Mat) (float64, float64) {
	gocv.MeanStdDev(src, &ws.mean, &ws.stddev)
	return ws.mean.Mean().Val1, ws.stddev.Mean().Val1
}
