package server_response

import (
	"faceguard.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

type ginResponder struct{}

// Respond writes the standard JSON envelope and aborts the gin chain.
func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, response_code *uint, device_id *string) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()
	response := map[string]any{
		"message": message,
		"body":    payload,
	}
	if response_code != nil {
		response["response_code"] = response_code
	}
	if errs != nil {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	if code >= 400 {
		fields := []logger.LoggerOptions{
			{Key: "status", Data: code},
			{Key: "message", Data: message},
		}
		if device_id != nil {
			fields = append(fields, logger.LoggerOptions{Key: "device_id", Data: *device_id})
		}
		logger.Debug("request failed", fields...)
	}
	ginCtx.JSON(code, response)
}
