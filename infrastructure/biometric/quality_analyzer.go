package biometric

import (
	"image"
	"math"
	"sync"
	"time"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
	"gocv.io/x/gocv"
)

const epsilon = 1e-6

// findings collects the reasons behind negative contributions.
type findings struct {
	reasons []string
}

func (f *findings) flag(reason string, contribution float64) float64 {
	f.reasons = append(f.reasons, reason)
	return contribution
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// AnalyzeQuality scores the physical plausibility of a face crop. The result
// is always within [cfg.MinAdjustment, cfg.MaxAdjustment]; a crop with no
// usable face area yields an invalid report at the minimum.
func AnalyzeQuality(ws *Workspace, crop FaceCrop, face entities.FaceObservation, cfg liveness.HeuristicConfig) entities.QualityReport {
	report := entities.QualityReport{Adjustment: cfg.MinAdjustment}

	if crop.Window.Empty() {
		report.Reasons = []string{"empty_crop"}
		return report
	}
	if crop.Window.Channels() != 3 {
		report.Reasons = []string{"unsupported_channels"}
		return report
	}
	faceRect := crop.Face.Intersect(image.Rect(0, 0, crop.Window.Cols(), crop.Window.Rows()))
	if faceRect.Empty() {
		report.Reasons = []string{"empty_face_region"}
		return report
	}

	region := crop.Window.Region(faceRect)
	defer region.Close()
	gocv.Resize(region, &ws.face, image.Pt(ws.analysisSize, ws.analysisSize), 0, 0, gocv.InterpolationArea)
	gocv.CvtColor(ws.face, &ws.gray, gocv.ColorBGRToGray)
	gocv.Resize(ws.gray, &ws.spectralGray, image.Pt(ws.spectralSize, ws.spectralSize), 0, 0, gocv.InterpolationArea)

	f := &findings{}
	m := &report.Metrics
	w := cfg.Weights
	breakdown := entities.QualityBreakdown{
		Texture:          w.Texture * ws.textureScore(cfg, m, f),
		Moire:            w.Moire * ws.moireScore(cfg, m, f),
		Spectral:         w.Spectral * ws.spectralScore(cfg, m, f),
		Chroma:           w.Chroma * ws.chromaScore(cfg, m, f),
		ColorTemperature: w.ColorTemperature * ws.colorTemperatureScore(cfg, m, f),
	}
	if cfg.ScreenEdgeEnabled {
		breakdown.ScreenEdge = w.ScreenEdge * ws.screenEdgeScore(crop.Window, cfg, m, f)
	}
	if cfg.PoseEnabled {
		breakdown.Pose = w.Pose * poseScore(face, cfg, m, f)
	}

	sum := breakdown.Sum()
	if !finite(sum) {
		sum = 0
	}
	report.Breakdown = breakdown
	report.Adjustment = math.Min(cfg.MaxAdjustment, math.Max(cfg.MinAdjustment, sum))
	report.Valid = true
	report.Reasons = f.reasons
	return report
}

// QualityAnalyzer owns a Workspace and runs AnalyzeQuality on it.
type QualityAnalyzer struct {
	config          liveness.HeuristicConfig
	workspace       *Workspace
	processingStats ProcessingStats
	mutex           sync.Mutex
}

func NewQualityAnalyzer(config liveness.HeuristicConfig) *QualityAnalyzer {
	return &QualityAnalyzer{
		config:    config,
		workspace: NewWorkspace(config),
	}
}

// Analyze implements liveness.QualityAnalyzer for gocv face crops.
func (qa *QualityAnalyzer) Analyze(crop *FaceCrop, face entities.FaceObservation) entities.QualityReport {
	if crop == nil {
		return entities.QualityReport{Adjustment: qa.config.MinAdjustment, Reasons: []string{"empty_crop"}}
	}

	qa.mutex.Lock()
	defer qa.mutex.Unlock()

	startTime := time.Now()
	report := AnalyzeQuality(qa.workspace, *crop, face, qa.config)
	qa.processingStats.record(time.Since(startTime), report.Valid)
	return report
}

func (qa *QualityAnalyzer) GetStats() ProcessingStats {
	qa.mutex.Lock()
	defer qa.mutex.Unlock()
	return qa.processingStats
}

func (qa *QualityAnalyzer) Close() {
	qa.mutex.Lock()
	defer qa.mutex.Unlock()
	qa.workspace.Close()
}
