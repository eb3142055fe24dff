package routev1

import (
	apperrors "faceguard.io/application/appErrors"
	"faceguard.io/application/controller"
	"faceguard.io/application/controller/dto"
	"faceguard.io/application/interfaces"
	"github.com/gin-gonic/gin"
)

func LivenessRouter(router *gin.RouterGroup) {
	router.GET("/liveness/models", func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		controller.FetchLivenessModels(&interfaces.ApplicationContext[any]{
			Ctx:        ctx,
			DeviceID:   appContext.DeviceID,
			RequestCtx: ctx.Request.Context(),
		})
	})

	livenessRouter := router.Group("/liveness/sessions")
	{
		livenessRouter.POST("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateLivenessSessionDTO
			if ctx.Request.ContentLength > 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
					return
				}
			}
			controller.CreateLivenessSession(&interfaces.ApplicationContext[dto.CreateLivenessSessionDTO]{
				Ctx:        ctx,
				Body:       &body,
				DeviceID:   appContext.DeviceID,
				RequestCtx: ctx.Request.Context(),
			})
		})

		livenessRouter.POST("/:id/frames", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitLivenessFrameDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			controller.SubmitLivenessFrame(&interfaces.ApplicationContext[dto.SubmitLivenessFrameDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID:   appContext.DeviceID,
				RequestCtx: ctx.Request.Context(),
			})
		})

		livenessRouter.POST("/:id/scores", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SubmitLivenessScoresDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			controller.SubmitLivenessScores(&interfaces.ApplicationContext[dto.SubmitLivenessScoresDTO]{
				Ctx:  ctx,
				Body: &body,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				DeviceID:   appContext.DeviceID,
				RequestCtx: ctx.Request.Context(),
			})
		})

		livenessRouter.POST("/:id/reset", func(ctx *gin.Context) {
			controller.ResetLivenessSession(sessionContext(ctx))
		})

		livenessRouter.GET("/:id", func(ctx *gin.Context) {
			controller.FetchLivenessSession(sessionContext(ctx))
		})

		livenessRouter.DELETE("/:id", func(ctx *gin.Context) {
			controller.DeleteLivenessSession(sessionContext(ctx))
		})
	}
}

func sessionContext(ctx *gin.Context) *interfaces.ApplicationContext[any] {
	appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
	return &interfaces.ApplicationContext[any]{
		Ctx: ctx,
		Param: map[string]any{
			"id": ctx.Param("id"),
		},
		DeviceID:   appContext.DeviceID,
		RequestCtx: ctx.Request.Context(),
	}
}
