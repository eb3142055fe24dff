package liveness

import (
	"math"

	"faceguard.io/entities"
)

// Smooth folds one raw classifier score into the smoother state and returns
// the new state with the smoothed score. The smoother reacts to low scores
// immediately and to high scores only after they persist.
func Smooth(state entities.SmootherState, raw float64, cfg SmootherConfig) (entities.SmootherState, float64) {
	raw = clampUnit(finite(raw, 0))

	if raw < cfg.HardFakeFloor {
		state = clearHistory(state)
		state = pushHistory(state, raw)
		state.ConsecutiveLowCount++
		return remember(state, raw), raw
	}

	if state.HasPrevious && state.PreviousScore > cfg.SwapHighScore && raw < cfg.SwapDropScore {
		state = clearHistory(state)
		state.ConsecutiveLowCount = 0
		return remember(state, raw), raw
	}

	if raw < cfg.SoftFakeCeiling {
		state.ConsecutiveLowCount++
		if state.ConsecutiveLowCount >= cfg.LowRunLength {
			state = clearHistory(state)
		}
	} else {
		state.ConsecutiveLowCount = 0
	}

	state = pushHistory(state, raw)
	average := recencyWeightedAverage(state.Values(), cfg.RecencyGrowth)
	smoothed := average
	if raw < average-cfg.DivergenceMargin {
		smoothed = cfg.RawBias*raw + (1-cfg.RawBias)*average
	}
	return remember(state, raw), clampUnit(smoothed)
}

// ResetSmoother returns the initial smoother state.
func ResetSmoother() entities.SmootherState {
	return entities.SmootherState{}
}

func remember(state entities.SmootherState, raw float64) entities.SmootherState {
	state.PreviousScore = raw
	state.HasPrevious = true
	return state
}

func clearHistory(state entities.SmootherState) entities.SmootherState {
	state.History = [entities.SmootherCapacity]float64{}
	state.Len = 0
	return state
}

func pushHistory(state entities.SmootherState, raw float64) entities.SmootherState {
	if state.Len < 0 || state.Len > entities.SmootherCapacity {
		state = clearHistory(state)
	}
	if state.Len == entities.SmootherCapacity {
		copy(state.History[:], state.History[1:])
		state.History[entities.SmootherCapacity-1] = raw
		return state
	}
	state.History[state.Len] = raw
	state.Len++
	return state
}

// recencyWeightedAverage weights entry i (0 = oldest) by growth^i.
func recencyWeightedAverage(values []float64, growth float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if growth < 1 {
		growth = 1
	}
	var sum, weights float64
	for i, v := range values {
		w := math.Pow(growth, float64(i))
		sum += v * w
		weights += w
	}
	return finite(sum/weights, values[len(values)-1])
}
