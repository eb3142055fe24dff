package biometric

import (
	"image"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

// moireScore uses the Laplacian variance of the small gray crop. Screen
// recaptures alias into a very high variance, blurred prints into a very low
// one.
func (ws *Workspace) moireScore(cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	gocv.Laplacian(ws.spectralGray, &ws.laplacian, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)
	_, std := ws.meanStdDev(ws.laplacian)
	variance := std * std
	m.LaplacianVariance = variance

	if !finite(variance) {
		return 0
	}
	switch {
	case variance > cfg.LaplacianCeiling:
		return f.flag("moire_pattern", -0.25)
	case variance < cfg.LaplacianFloor:
		return f.flag("surface_blurred", -0.12)
	case variance >= cfg.LaplacianNaturalMin && variance <= cfg.LaplacianNaturalMax:
		return 0.10
	}
	return 0
}

// spectralScore measures the mean log magnitude of the centred spectrum inside
// the annulus mask, i.e. the mid and high frequency energy of the crop.
func (ws *Workspace) spectralScore(cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	ws.spectralGray.ConvertTo(&ws.spectralFloat, gocv.MatTypeCV32F)
	gocv.DFT(ws.spectralFloat, &ws.spectrum, gocv.DftComplexOutput)
	gocv.ExtractChannel(ws.spectrum, &ws.re, 0)
	gocv.ExtractChannel(ws.spectrum, &ws.im, 1)
	gocv.Magnitude(ws.re, ws.im, &ws.magnitude)
	ws.magnitude.AddFloat(1)
	gocv.Log(ws.magnitude, &ws.magnitude)
	ws.shiftSpectrum()

	energy := ws.shifted.MeanWithMask(ws.annulusMask).Val1
	m.SpectralEnergy = energy

	if !finite(energy) {
		return 0
	}
	switch {
	case energy > cfg.SpectralCeiling:
		return f.flag("spectral_peaks", -0.15)
	case energy < cfg.SpectralFloor:
		return f.flag("spectrum_flat", -0.12)
	case energy >= cfg.SpectralNaturalMin && energy <= cfg.SpectralNaturalMax:
		return 0.08
	}
	return 0
}

// shiftSpectrum swaps diagonal quadrants of the magnitude into ws.shifted so
// the DC term sits at the centre.
func (ws *Workspace) shiftSpectrum() {
	size := ws.spectralSize
	half := size / 2
	swaps := [4][2]image.Rectangle{
		{image.Rect(0, 0, half, half), image.Rect(half, half, size, size)},
		{image.Rect(half, 0, size, half), image.Rect(0, half, half, size)},
		{image.Rect(half, half, size, size), image.Rect(0, 0, half, half)},
		{image.Rect(0, half, half, size), image.Rect(half, 0, size, half)},
	}
	for _, q := range swaps {
		src := ws.magnitude.Region(q[0])
		dst := ws.shifted.Region(q[1])
		src.CopyTo(&dst)
		src.Close()
		dst.Close()
	}
}
