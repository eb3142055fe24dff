package interfaces

import (
	"context"
	"net/http"
)

// ApplicationContext carries a request through the controller layer without
// tying controllers to the HTTP framework.
type ApplicationContext[T any] struct {
	Ctx       any
	Body      *T
	Param     map[string]any
	Keys      map[string]any
	Header    http.Header
	DeviceID  string
	UserAgent string
	// RequestCtx is the request's cancellation context.
	RequestCtx context.Context
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

// Context returns the request context, or Background when none was set.
func (ac *ApplicationContext[T]) Context() context.Context {
	if ac.RequestCtx == nil {
		return context.Background()
	}
	return ac.RequestCtx
}
