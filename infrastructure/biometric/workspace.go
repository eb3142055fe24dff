package biometric

import (
	"image"
	"image/color"

	"faceguard.io/application/liveness"
	"gocv.io/x/gocv"
)

var (
	maskOn  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	maskOff = color.RGBA{}
)

// Workspace holds every intermediate Mat the quality analyzer needs so that a
// frame can be analyzed without allocating. A Workspace must not be shared
// between goroutines.
type Workspace struct {
	analysisSize int
	spectralSize int

	// analysis-size buffers
	face      gocv.Mat
	gray      gocv.Mat
	gradX     gocv.Mat
	gradY     gocv.Mat
	gradMag   gocv.Mat
	mean      gocv.Mat
	stddev    gocv.Mat
	ycrcb     gocv.Mat
	luma      gocv.Mat
	hsv       gocv.Mat
	window    gocv.Mat
	windowGry gocv.Mat
	edges     gocv.Mat

	// spectral-size buffers
	spectralGray  gocv.Mat
	laplacian     gocv.Mat
	spectralFloat gocv.Mat
	spectrum      gocv.Mat
	re            gocv.Mat
	im            gocv.Mat
	magnitude     gocv.Mat
	shifted       gocv.Mat

	borderMask  gocv.Mat
	annulusMask gocv.Mat
}

// NewWorkspace allocates the buffers and builds the border and annulus masks
// for the sizes in cfg. An odd spectral size is rounded up so the spectrum
// quadrants swap cleanly.
func NewWorkspace(cfg liveness.HeuristicConfig) *Workspace {
	spectral := cfg.SpectralSize
	if spectral%2 != 0 {
		spectral++
	}
	ws := &Workspace{
		analysisSize:  cfg.AnalysisSize,
		spectralSize:  spectral,
		face:          gocv.NewMat(),
		gray:          gocv.NewMat(),
		gradX:         gocv.NewMat(),
		gradY:         gocv.NewMat(),
		gradMag:       gocv.NewMat(),
		mean:          gocv.NewMat(),
		stddev:        gocv.NewMat(),
		ycrcb:         gocv.NewMat(),
		luma:          gocv.NewMat(),
		hsv:           gocv.NewMat(),
		window:        gocv.NewMat(),
		windowGry:     gocv.NewMat(),
		edges:         gocv.NewMat(),
		spectralGray:  gocv.NewMat(),
		laplacian:     gocv.NewMat(),
		spectralFloat: gocv.NewMat(),
		spectrum:      gocv.NewMat(),
		re:            gocv.NewMat(),
		im:            gocv.NewMat(),
		magnitude:     gocv.NewMat(),
		shifted:       gocv.NewMatWithSize(spectral, spectral, gocv.MatTypeCV32F),
	}
	ws.borderMask = buildBorderMask(cfg.AnalysisSize, cfg.BorderWidth)
	ws.annulusMask = buildAnnulusMask(spectral, cfg.AnnulusInner, cfg.AnnulusOuter)
	return ws
}

// buildBorderMask marks a band of the given width along every edge.
func buildBorderMask(size, border int) gocv.Mat {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), size, size, gocv.MatTypeCV8U)
	inner := image.Rect(border, border, size-border, size-border)
	if !inner.Empty() {
		gocv.Rectangle(&mask, inner, maskOff, -1)
	}
	return mask
}

// buildAnnulusMask marks radii in [inner, outer) around the centre.
func buildAnnulusMask(size, inner, outer int) gocv.Mat {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), size, size, gocv.MatTypeCV8U)
	center := image.Pt(size/2, size/2)
	gocv.Circle(&mask, center, outer, maskOn, -1)
	if inner > 0 {
		gocv.Circle(&mask, center, inner, maskOff, -1)
	}
	return mask
}

func (ws *Workspace) Close() {
	for _, m := range []*gocv.Mat{
		&ws.face, &ws.gray, &ws.gradX, &ws.gradY, &ws.gradMag, &ws.mean, &ws.stddev,
		&ws.ycrcb, &ws.luma, &ws.hsv, &ws.window, &ws.windowGry, &ws.edges,
		&ws.spectralGray, &ws.laplacian, &ws.spectralFloat, &ws.spectrum,
		&ws.re, &ws.im, &ws.magnitude, &ws.shifted,
		&ws.borderMask, &ws.annulusMask,
	} {
		m.Close()
	}
}
