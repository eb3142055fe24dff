package ratelimit

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// TokenBucketPerIP limits each client IP to requestsPerSecond. Camera clients
// stream frames, so the default sits above a typical 25 fps capture rate.
func TokenBucketPerIP(requestsPerSecond float64) gin.HandlerFunc {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 30
	}
	message := map[string]any{
		"message": "Too many frames from this client. Drop frames and retry.",
	}
	jsonMessage, _ := json.Marshal(message)

	tlbthLimiter := tollbooth.NewLimiter(requestsPerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: 5 * time.Minute,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
