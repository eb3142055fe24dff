package controller

import (
	"errors"
	"net/http"

	apperrors "faceguard.io/application/appErrors"
	"faceguard.io/application/constants"
	"faceguard.io/application/controller/dto"
	"faceguard.io/application/interfaces"
	livenessService "faceguard.io/application/services/liveness"
	"faceguard.io/application/utils"
	"faceguard.io/infrastructure/biometric"
	server_response "faceguard.io/infrastructure/serverResponse"
	"faceguard.io/infrastructure/validator"
)

func CreateLivenessSession(ctx *interfaces.ApplicationContext[dto.CreateLivenessSessionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	session, err := livenessService.SessionRegistry.Create(ctx.Context(), ctx.Body.Policy)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "liveness session created", map[string]any{
		"id":     session.ID,
		"policy": session.Policy,
	}, nil, nil, &ctx.DeviceID)
}

func SubmitLivenessFrame(ctx *interfaces.ApplicationContext[dto.SubmitLivenessFrameDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	image, err := utils.DecodeBase64Image(ctx.Body.Image)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid image format", []error{err}, nil, ctx.DeviceID)
		return
	}

	result, err := livenessService.SessionRegistry.SubmitImage(ctx.Context(), ctx.Param["id"].(string), image)
	if err != nil {
		respondWithSessionError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "frame processed", result, nil, nil, &ctx.DeviceID)
}

func SubmitLivenessScores(ctx *interfaces.ApplicationContext[dto.SubmitLivenessScoresDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	result, err := livenessService.SessionRegistry.SubmitScores(ctx.Context(), ctx.Param["id"].(string), livenessService.ScoreFrame{
		FacePresent:       ctx.Body.FacePresent,
		FaceWidth:         ctx.Body.FaceWidth,
		RawScore:          ctx.Body.RawScore,
		QualityAdjustment: ctx.Body.QualityAdjustment,
	})
	if err != nil {
		respondWithSessionError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "frame processed", result, nil, nil, &ctx.DeviceID)
}

func ResetLivenessSession(ctx *interfaces.ApplicationContext[any]) {
	result, err := livenessService.SessionRegistry.Reset(ctx.Context(), ctx.Param["id"].(string))
	if err != nil {
		respondWithSessionError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session reset", result, nil, nil, &ctx.DeviceID)
}

func FetchLivenessSession(ctx *interfaces.ApplicationContext[any]) {
	session, err := livenessService.SessionRegistry.Get(ctx.Context(), ctx.Param["id"].(string))
	if err != nil {
		respondWithSessionError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session fetched", session, nil, nil, &ctx.DeviceID)
}

func DeleteLivenessSession(ctx *interfaces.ApplicationContext[any]) {
	if err := livenessService.SessionRegistry.Delete(ctx.Context(), ctx.Param["id"].(string)); err != nil {
		respondWithSessionError(ctx.Ctx, err, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session deleted", nil, nil, nil, &ctx.DeviceID)
}

func respondWithSessionError(ctx any, err error, deviceID string) {
	switch {
	case errors.Is(err, livenessService.ErrSessionNotFound):
		apperrors.SessionExpiredError(ctx, deviceID)
	case errors.Is(err, livenessService.ErrSessionBusy):
		apperrors.SessionBusyError(ctx, deviceID)
	case errors.Is(err, livenessService.ErrNoDetector), errors.Is(err, biometric.ErrDetectorUnavailable):
		apperrors.ExternalDependencyError(ctx, "face detection", err, &constants.DETECTOR_UNAVAILABLE, deviceID)
	case errors.Is(err, biometric.ErrUndecodableFrame):
		apperrors.ClientError(ctx, "the frame could not be decoded as an image", []error{err}, nil, deviceID)
	default:
		apperrors.FatalServerError(ctx, err, deviceID)
	}
}

func FetchLivenessModels(ctx *interfaces.ApplicationContext[any]) {
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "model status fetched", biometric.Status(), nil, nil, &ctx.DeviceID)
}
