package apperrors

import (
	"fmt"
	"net/http"

	"faceguard.io/application/constants"
	"faceguard.io/infrastructure/logger"
	server_response "faceguard.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string, deviceID *string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil, deviceID)
}

func SessionExpiredError(ctx interface{}, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound,
		"this liveness session does not exist or has expired. start a new one.", nil, nil, &constants.SESSION_EXPIRED, &deviceID)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed 🙄", nil, *errMessages, nil, &deviceID)
}

func ErrorProcessingPayload(ctx interface{}, deviceID *string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed 🤨", nil, nil, nil, deviceID)
}

func SessionBusyError(ctx interface{}, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusTooManyRequests,
		"a frame for this session is still being processed. drop this one and send the next.", nil, nil, &constants.SESSION_BUSY, &deviceID)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error, responseCode *uint, deviceID string) {
	logger.Error(err.Error(), logger.LoggerOptions{
		Key: fmt.Sprintf("error with %s", serviceName),
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		fmt.Sprintf("%s is currently unavailable 😢", serviceName), nil, nil, responseCode, &deviceID)
}

func FatalServerError(ctx interface{}, err error, deviceID string) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err.Error(),
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Omo! Our service is temporarily down 😢. Our team is working to fix it. Please check back later.", nil, nil, nil, &deviceID)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint, deviceID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode, &deviceID)
}
