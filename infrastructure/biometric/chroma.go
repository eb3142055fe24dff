package biometric

import (
	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

// chromaScore checks that the face sits in the skin region of YCrCb, has a
// plausible luma range and a plausible HSV saturation.
func (ws *Workspace) chromaScore(cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	gocv.CvtColor(ws.face, &ws.ycrcb, gocv.ColorBGRToYCrCb)
	ycc := ws.ycrcb.Mean()
	m.MeanCr = ycc.Val2
	m.MeanCb = ycc.Val3

	gocv.ExtractChannel(ws.ycrcb, &ws.luma, 0)
	minY, maxY, _, _ := gocv.MinMaxLoc(ws.luma)
	contrast := float64(maxY - minY)
	m.LumaContrast = contrast

	gocv.CvtColor(ws.face, &ws.hsv, gocv.ColorBGRToHSV)
	saturation := ws.hsv.Mean().Val2
	m.MeanSaturation = saturation

	score := 0.0
	if finite(m.MeanCr) && finite(m.MeanCb) {
		outside := 0
		if m.MeanCr < cfg.CrMin || m.MeanCr > cfg.CrMax {
			outside++
		}
		if m.MeanCb < cfg.CbMin || m.MeanCb > cfg.CbMax {
			outside++
		}
		switch outside {
		case 2:
			score += f.flag("chroma_not_skin", -0.15)
		case 1:
			score += f.flag("chroma_borderline", -0.06)
		default:
			score += 0.05
		}
	}

	switch {
	case contrast < cfg.LumaFlat:
		score += f.flag("luma_flat", -0.08)
	case contrast > cfg.LumaClipped:
		score += f.flag("luma_clipped", -0.06)
	}

	if finite(saturation) && (saturation < cfg.SaturationMin || saturation > cfg.SaturationMax) {
		score += f.flag("saturation_implausible", -0.05)
	}
	return score
}

// colorTemperatureScore compares the channel balance of the face with the
// warm cast of skin under ordinary lighting. Displays tend to render cold.
func (ws *Workspace) colorTemperatureScore(cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	bgr := ws.face.Mean()
	redGreen := bgr.Val3 / (bgr.Val2 + epsilon)
	greenBlue := bgr.Val2 / (bgr.Val1 + epsilon)
	brightness := ws.gray.Mean().Val1
	m.RedGreenRatio = redGreen
	m.GreenBlueRatio = greenBlue
	m.Brightness = brightness

	score := 0.0
	if finite(redGreen) && finite(greenBlue) {
		switch {
		case within(redGreen, cfg.RedGreenMin, cfg.RedGreenMax) && within(greenBlue, cfg.GreenBlueMin, cfg.GreenBlueMax):
			score += 0.05
		case redGreen < cfg.RedGreenFloor || greenBlue < cfg.GreenBlueFloor:
			score += f.flag("color_cast_cold", -0.10)
		}
	}
	if finite(brightness) && (brightness < cfg.BrightnessMin || brightness > cfg.BrightnessMax) {
		score += f.flag("exposure_out_of_range", -0.10)
	}
	return score
}
