package liveness

import (
	"fmt"
	"strings"
)

// SmootherConfig holds the temporal smoother thresholds.
type SmootherConfig struct {
	HardFakeFloor    float64 `json:"hardFakeFloor" yaml:"hardFakeFloor" validate:"gte=0,lte=1"`
	SwapHighScore    float64 `json:"swapHighScore" yaml:"swapHighScore" validate:"gte=0,lte=1"`
	SwapDropScore    float64 `json:"swapDropScore" yaml:"swapDropScore" validate:"gte=0,lte=1,ltfield=SwapHighScore"`
	SoftFakeCeiling  float64 `json:"softFakeCeiling" yaml:"softFakeCeiling" validate:"gte=0,lte=1"`
	LowRunLength     int     `json:"lowRunLength" yaml:"lowRunLength" validate:"gte=1"`
	RecencyGrowth    float64 `json:"recencyGrowth" yaml:"recencyGrowth" validate:"gte=1"`
	DivergenceMargin float64 `json:"divergenceMargin" yaml:"divergenceMargin" validate:"gte=0,lte=1"`
	RawBias          float64 `json:"rawBias" yaml:"rawBias" validate:"gte=0,lte=1"`
}

// PenaltyTier dampens the fused score when the quality adjustment is at or
// below Threshold. Tiers are evaluated in order, first match wins.
type PenaltyTier struct {
	Name       string  `json:"name" yaml:"name" validate:"required"`
	Threshold  float64 `json:"threshold" yaml:"threshold" validate:"gte=-1,lte=1"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier" validate:"gte=0,lte=1"`
}

type FusionConfig struct {
	ClassifierWeight float64       `json:"classifierWeight" yaml:"classifierWeight" validate:"gt=0,lte=1"`
	HeuristicWeight  float64       `json:"heuristicWeight" yaml:"heuristicWeight" validate:"gte=0,lte=1"`
	PenaltyTiers     []PenaltyTier `json:"penaltyTiers" yaml:"penaltyTiers" validate:"dive"`
}

// EvidenceBand bounds a strong/weak real or fake rule. Real rules use the
// fields as minimums, fake rules as maximums.
type EvidenceBand struct {
	Final      float64 `json:"final" yaml:"final" validate:"gte=0,lte=1"`
	Raw        float64 `json:"raw" yaml:"raw" validate:"gte=0,lte=1"`
	Adjustment float64 `json:"adjustment" yaml:"adjustment" validate:"gte=-1,lte=1"`
}

type DecisionConfig struct {
	StrongReal EvidenceBand `json:"strongReal" yaml:"strongReal"`
	WeakReal   EvidenceBand `json:"weakReal" yaml:"weakReal"`
	StrongFake EvidenceBand `json:"strongFake" yaml:"strongFake"`
	WeakFake   EvidenceBand `json:"weakFake" yaml:"weakFake"`

	StrongRealGain   float64 `json:"strongRealGain" yaml:"strongRealGain" validate:"gt=0"`
	WeakRealGain     float64 `json:"weakRealGain" yaml:"weakRealGain" validate:"gt=0"`
	RescueAdjustment float64 `json:"rescueAdjustment" yaml:"rescueAdjustment" validate:"gte=-1,lte=1"`

	MinRealFrames  int     `json:"minRealFrames" yaml:"minRealFrames" validate:"gte=1"`
	MinConfidence  float64 `json:"minConfidence" yaml:"minConfidence" validate:"gt=0"`
	MinSpoofFrames int     `json:"minSpoofFrames" yaml:"minSpoofFrames" validate:"gte=1"`

	SwapLastRealMin float64 `json:"swapLastRealMin" yaml:"swapLastRealMin" validate:"gte=0,lte=1"`
	SwapDropRaw     float64 `json:"swapDropRaw" yaml:"swapDropRaw" validate:"gte=0,lte=1"`
	SwapDropFrames  int     `json:"swapDropFrames" yaml:"swapDropFrames" validate:"gte=1"`
	SwapForcedScore float64 `json:"swapForcedScore" yaml:"swapForcedScore" validate:"gte=0,lte=1"`
	SwapSpoofFloor  int     `json:"swapSpoofFloor" yaml:"swapSpoofFloor" validate:"gte=0"`
}

type SessionConfig struct {
	MinFaceWidth     int `json:"minFaceWidth" yaml:"minFaceWidth" validate:"gte=1"`
	MaxMissingFrames int `json:"maxMissingFrames" yaml:"maxMissingFrames" validate:"gte=0"`
}

// HeuristicConfig parameterises the image quality analyzer. The bands are
// expressed in the units of the underlying metric.
type HeuristicConfig struct {
	AnalysisSize  int     `json:"analysisSize" yaml:"analysisSize" validate:"gte=32"`
	SpectralSize  int     `json:"spectralSize" yaml:"spectralSize" validate:"gte=32"`
	WindowScale   float64 `json:"windowScale" yaml:"windowScale" validate:"gte=1"`
	MinAdjustment float64 `json:"minAdjustment" yaml:"minAdjustment" validate:"gte=-1,lte=0"`
	MaxAdjustment float64 `json:"maxAdjustment" yaml:"maxAdjustment" validate:"gte=0,lte=1"`

	GradientRatioLow  float64 `json:"gradientRatioLow" yaml:"gradientRatioLow"`
	GradientRatioHigh float64 `json:"gradientRatioHigh" yaml:"gradientRatioHigh"`
	GradientMeanLow   float64 `json:"gradientMeanLow" yaml:"gradientMeanLow"`
	GradientMeanHigh  float64 `json:"gradientMeanHigh" yaml:"gradientMeanHigh"`

	LaplacianFloor      float64 `json:"laplacianFloor" yaml:"laplacianFloor"`
	LaplacianCeiling    float64 `json:"laplacianCeiling" yaml:"laplacianCeiling"`
	LaplacianNaturalMin float64 `json:"laplacianNaturalMin" yaml:"laplacianNaturalMin"`
	LaplacianNaturalMax float64 `json:"laplacianNaturalMax" yaml:"laplacianNaturalMax"`

	AnnulusInner       int     `json:"annulusInner" yaml:"annulusInner" validate:"gte=0"`
	AnnulusOuter       int     `json:"annulusOuter" yaml:"annulusOuter" validate:"gtfield=AnnulusInner"`
	SpectralFloor      float64 `json:"spectralFloor" yaml:"spectralFloor"`
	SpectralCeiling    float64 `json:"spectralCeiling" yaml:"spectralCeiling"`
	SpectralNaturalMin float64 `json:"spectralNaturalMin" yaml:"spectralNaturalMin"`
	SpectralNaturalMax float64 `json:"spectralNaturalMax" yaml:"spectralNaturalMax"`

	CrMin         float64 `json:"crMin" yaml:"crMin"`
	CrMax         float64 `json:"crMax" yaml:"crMax"`
	CbMin         float64 `json:"cbMin" yaml:"cbMin"`
	CbMax         float64 `json:"cbMax" yaml:"cbMax"`
	LumaFlat      float64 `json:"lumaFlat" yaml:"lumaFlat"`
	LumaClipped   float64 `json:"lumaClipped" yaml:"lumaClipped"`
	SaturationMin float64 `json:"saturationMin" yaml:"saturationMin"`
	SaturationMax float64 `json:"saturationMax" yaml:"saturationMax"`

	RedGreenMin    float64 `json:"redGreenMin" yaml:"redGreenMin"`
	RedGreenMax    float64 `json:"redGreenMax" yaml:"redGreenMax"`
	RedGreenFloor  float64 `json:"redGreenFloor" yaml:"redGreenFloor"`
	GreenBlueMin   float64 `json:"greenBlueMin" yaml:"greenBlueMin"`
	GreenBlueMax   float64 `json:"greenBlueMax" yaml:"greenBlueMax"`
	GreenBlueFloor float64 `json:"greenBlueFloor" yaml:"greenBlueFloor"`
	BrightnessMin  float64 `json:"brightnessMin" yaml:"brightnessMin"`
	BrightnessMax  float64 `json:"brightnessMax" yaml:"brightnessMax"`

	ScreenEdgeEnabled bool    `json:"screenEdgeEnabled" yaml:"screenEdgeEnabled"`
	BorderWidth       int     `json:"borderWidth" yaml:"borderWidth" validate:"gte=1"`
	EdgeDensityHigh   float64 `json:"edgeDensityHigh" yaml:"edgeDensityHigh"`
	EdgeDensityMid    float64 `json:"edgeDensityMid" yaml:"edgeDensityMid"`

	PoseEnabled   bool    `json:"poseEnabled" yaml:"poseEnabled"`
	MaxYaw        float64 `json:"maxYaw" yaml:"maxYaw"`
	PitchRatioMin float64 `json:"pitchRatioMin" yaml:"pitchRatioMin"`
	PitchRatioMax float64 `json:"pitchRatioMax" yaml:"pitchRatioMax"`

	Weights HeuristicWeights `json:"weights" yaml:"weights"`
}

type HeuristicWeights struct {
	Texture          float64 `json:"texture" yaml:"texture" validate:"gte=0"`
	Moire            float64 `json:"moire" yaml:"moire" validate:"gte=0"`
	Spectral         float64 `json:"spectral" yaml:"spectral" validate:"gte=0"`
	Chroma           float64 `json:"chroma" yaml:"chroma" validate:"gte=0"`
	ColorTemperature float64 `json:"colorTemperature" yaml:"colorTemperature" validate:"gte=0"`
	ScreenEdge       float64 `json:"screenEdge" yaml:"screenEdge" validate:"gte=0"`
	Pose             float64 `json:"pose" yaml:"pose" validate:"gte=0"`
}

// EngineConfig carries every tunable of the engine.
type EngineConfig struct {
	Policy     string          `json:"policy" yaml:"policy" validate:"required"`
	Smoother   SmootherConfig  `json:"smoother" yaml:"smoother"`
	Fusion     FusionConfig    `json:"fusion" yaml:"fusion"`
	Decision   DecisionConfig  `json:"decision" yaml:"decision"`
	Session    SessionConfig   `json:"session" yaml:"session"`
	Heuristics HeuristicConfig `json:"heuristics" yaml:"heuristics"`
}

func DefaultSmootherConfig() SmootherConfig {
	return SmootherConfig{
		HardFakeFloor:    0.25,
		SwapHighScore:    0.70,
		SwapDropScore:    0.45,
		SoftFakeCeiling:  0.40,
		LowRunLength:     3,
		RecencyGrowth:    1.5,
		DivergenceMargin: 0.15,
		RawBias:          0.7,
	}
}

func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		ClassifierWeight: 0.75,
		HeuristicWeight:  0.25,
		PenaltyTiers: []PenaltyTier{
			{Name: "severe", Threshold: -0.45, Multiplier: 0.60},
			{Name: "moderate", Threshold: -0.25, Multiplier: 0.80},
		},
	}
}

func DefaultDecisionConfig() DecisionConfig {
	return DecisionConfig{
		StrongReal: EvidenceBand{Final: 0.75, Raw: 0.80, Adjustment: -0.10},
		WeakReal:   EvidenceBand{Final: 0.60, Raw: 0.65, Adjustment: -0.25},
		StrongFake: EvidenceBand{Final: 0.20, Raw: 0.15, Adjustment: 0.10},
		WeakFake:   EvidenceBand{Final: 0.40, Raw: 0.40, Adjustment: 0.30},

		StrongRealGain:   1.0,
		WeakRealGain:     0.5,
		RescueAdjustment: 0.10,

		MinRealFrames:  10,
		MinConfidence:  7.0,
		MinSpoofFrames: 5,

		SwapLastRealMin: 0.70,
		SwapDropRaw:     0.45,
		SwapDropFrames:  1,
		SwapForcedScore: 0.15,
		SwapSpoofFloor:  3,
	}
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MinFaceWidth:     80,
		MaxMissingFrames: 5,
	}
}

func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		AnalysisSize:  96,
		SpectralSize:  64,
		WindowScale:   1.8,
		MinAdjustment: -0.60,
		MaxAdjustment: 0.50,

		GradientRatioLow:  0.60,
		GradientRatioHigh: 1.60,
		GradientMeanLow:   8,
		GradientMeanHigh:  20,

		LaplacianFloor:      50,
		LaplacianCeiling:    1500,
		LaplacianNaturalMin: 150,
		LaplacianNaturalMax: 900,

		AnnulusInner:       8,
		AnnulusOuter:       32,
		SpectralFloor:      3.0,
		SpectralCeiling:    8.5,
		SpectralNaturalMin: 4.0,
		SpectralNaturalMax: 7.5,

		CrMin:         133,
		CrMax:         173,
		CbMin:         77,
		CbMax:         127,
		LumaFlat:      40,
		LumaClipped:   235,
		SaturationMin: 25,
		SaturationMax: 150,

		RedGreenMin:    1.0,
		RedGreenMax:    1.6,
		RedGreenFloor:  0.85,
		GreenBlueMin:   0.95,
		GreenBlueMax:   1.6,
		GreenBlueFloor: 0.80,
		BrightnessMin:  40,
		BrightnessMax:  220,

		ScreenEdgeEnabled: true,
		BorderWidth:       8,
		EdgeDensityHigh:   0.18,
		EdgeDensityMid:    0.10,

		PoseEnabled:   true,
		MaxYaw:        0.35,
		PitchRatioMin: 0.25,
		PitchRatioMax: 0.80,

		Weights: HeuristicWeights{
			Texture:          1,
			Moire:            1,
			Spectral:         1,
			Chroma:           1,
			ColorTemperature: 1,
			ScreenEdge:       1,
			Pose:             1,
		},
	}
}

// DefaultEngineConfig returns the balanced policy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Policy:     "balanced",
		Smoother:   DefaultSmootherConfig(),
		Fusion:     DefaultFusionConfig(),
		Decision:   DefaultDecisionConfig(),
		Session:    DefaultSessionConfig(),
		Heuristics: DefaultHeuristicConfig(),
	}
}

// StrictEngineConfig needs more evidence before REAL and flags spoofs sooner.
func StrictEngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.Policy = "strict"
	cfg.Decision.StrongReal = EvidenceBand{Final: 0.80, Raw: 0.85, Adjustment: -0.05}
	cfg.Decision.WeakReal = EvidenceBand{Final: 0.68, Raw: 0.72, Adjustment: -0.15}
	cfg.Decision.MinRealFrames = 15
	cfg.Decision.MinConfidence = 11.0
	cfg.Decision.MinSpoofFrames = 3
	cfg.Fusion.PenaltyTiers = []PenaltyTier{
		{Name: "severe", Threshold: -0.40, Multiplier: 0.50},
		{Name: "moderate", Threshold: -0.20, Multiplier: 0.75},
	}
	cfg.Session.MinFaceWidth = 100
	return cfg
}

// PermissiveEngineConfig accepts weaker evidence, for low quality cameras.
func PermissiveEngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.Policy = "permissive"
	cfg.Decision.StrongReal = EvidenceBand{Final: 0.70, Raw: 0.75, Adjustment: -0.20}
	cfg.Decision.WeakReal = EvidenceBand{Final: 0.55, Raw: 0.60, Adjustment: -0.35}
	cfg.Decision.MinRealFrames = 8
	cfg.Decision.MinConfidence = 5.0
	cfg.Decision.MinSpoofFrames = 7
	cfg.Session.MinFaceWidth = 64
	cfg.Session.MaxMissingFrames = 8
	return cfg
}

// EngineConfigForPolicy resolves a policy name, case-insensitively.
func EngineConfigForPolicy(name string) (EngineConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "balanced":
		return DefaultEngineConfig(), nil
	case "strict":
		return StrictEngineConfig(), nil
	case "permissive":
		return PermissiveEngineConfig(), nil
	}
	return EngineConfig{}, fmt.Errorf("unknown liveness policy %q", name)
}
