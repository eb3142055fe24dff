package liveness

// FusionResult is the fused score and the penalty tier applied to it, if any.
type FusionResult struct {
	Score float64
	Tier  string
}

// Fuse combines the smoothed classifier score with the quality adjustment.
func Fuse(smoothed, adjustment float64, cfg FusionConfig) float64 {
	return FuseDetailed(smoothed, adjustment, cfg).Score
}

// FuseDetailed maps the adjustment onto [0,1] around a neutral 0.5, takes the
// weighted sum and dampens it by the first penalty tier the adjustment falls into.
func FuseDetailed(smoothed, adjustment float64, cfg FusionConfig) FusionResult {
	smoothed = clampUnit(finite(smoothed, 0))
	adjustment = finite(adjustment, 0)

	heuristic := clampUnit(0.5 + adjustment)
	score := cfg.ClassifierWeight*smoothed + cfg.HeuristicWeight*heuristic

	result := FusionResult{}
	for _, tier := range cfg.PenaltyTiers {
		if adjustment <= tier.Threshold {
			score *= tier.Multiplier
			result.Tier = tier.Name
			break
		}
	}
	result.Score = clampUnit(finite(score, 0))
	return result
}
