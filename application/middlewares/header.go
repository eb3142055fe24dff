package middlewares

import (
	"faceguard.io/application/interfaces"
)

// RequestContextMiddleware identifies the calling device. Clients without an
// X-Device-Id header are keyed by their IP.
func RequestContextMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	if agent := ctx.GetHeader("User-Agent"); agent != nil {
		ctx.UserAgent = *agent
	}
	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil {
		ctx.DeviceID = clientIP
	} else {
		ctx.DeviceID = *deviceID
	}
	if ctx.Keys == nil {
		ctx.Keys = map[string]any{}
	}
	ctx.Keys["ip"] = clientIP
	return ctx, true
}
