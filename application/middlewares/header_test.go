package middlewares

import (
	"net/http"
	"testing"

	"faceguard.io/application/interfaces"
	"github.com/stretchr/testify/assert"
)

func TestRequestContextMiddleware(t *testing.T) {
	header := http.Header{}
	header.Set("X-Device-Id", "kiosk-7")
	header.Set("User-Agent", "camera/1.0")

	ctx, next := RequestContextMiddleware(&interfaces.ApplicationContext[any]{Header: header}, "10.0.0.4")
	assert.True(t, next)
	assert.Equal(t, "kiosk-7", ctx.DeviceID)
	assert.Equal(t, "camera/1.0", ctx.UserAgent)
	assert.Equal(t, "10.0.0.4", ctx.Keys["ip"])

	ctx, _ = RequestContextMiddleware(&interfaces.ApplicationContext[any]{}, "10.0.0.5")
	assert.Equal(t, "10.0.0.5", ctx.DeviceID)
	assert.Empty(t, ctx.UserAgent)
}
