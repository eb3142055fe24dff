package biometric

import (
	"image"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

// screenEdgeScore looks for the straight edges of a phone or tablet bezel in
// the outer band of the analysis window.
func (ws *Workspace) screenEdgeScore(window gocv.Mat, cfg liveness.HeuristicConfig, m *entities.QualityMetrics, f *findings) float64 {
	size := image.Pt(ws.analysisSize, ws.analysisSize)
	gocv.Resize(window, &ws.window, size, 0, 0, gocv.InterpolationArea)
	gocv.CvtColor(ws.window, &ws.windowGry, gocv.ColorBGRToGray)
	gocv.Canny(ws.windowGry, &ws.edges, 50, 150)

	density := ws.edges.MeanWithMask(ws.borderMask).Val1 / 255
	m.BorderEdgeDensity = density

	switch {
	case !finite(density):
		return 0
	case density > cfg.EdgeDensityHigh:
		return f.flag("screen_border", -0.15)
	case density > cfg.EdgeDensityMid:
		return f.flag("border_edges", -0.06)
	}
	return 0
}
