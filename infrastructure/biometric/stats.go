package biometric

import "time"

// ProcessingStats tracks processing statistics
type ProcessingStats struct {
	TotalRequests      int64   `json:"totalRequests"`
	SuccessfulRequests int64   `json:"successfulRequests"`
	AverageTime        float64 `json:"averageTimeMs"`
	TotalTime          int64   `json:"totalTimeMs"`
}

func (ps *ProcessingStats) record(processingTime time.Duration, success bool) {
	ps.TotalRequests++
	if success {
		ps.SuccessfulRequests++
	}
	ps.TotalTime += processingTime.Milliseconds()
	ps.AverageTime = float64(ps.TotalTime) / float64(ps.TotalRequests)
}
