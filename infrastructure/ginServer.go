package infrastructure

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "faceguard.io/application/appErrors"
	"faceguard.io/infrastructure/env"
	"faceguard.io/infrastructure/logger"
	middlewares "faceguard.io/infrastructure/middleware"
	ratelimit "faceguard.io/infrastructure/ratelimit"
	webRoutev1 "faceguard.io/infrastructure/routes/ginRouter/web/v1"
	server_response "faceguard.io/infrastructure/serverResponse"
	startup "faceguard.io/infrastructure/startUp"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ginServer struct{}

func (s *ginServer) Start() {
	startup.StartServices()
	defer startup.CleanUpServices()

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middlewares.RequestLoggerMiddleware())

	origins := []string{}
	for _, origin := range strings.Split(env.GetString("CORS_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 && env.GetString("GIN_MODE", "") == "debug" {
		origins = append(origins, "http://localhost:5174")
	}
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Device-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) > 0 {
		server.Use(cors.New(corsConfig))
	}
	server.Use(ratelimit.TokenBucketPerIP(env.GetFloat("RATE_LIMIT_PER_SECOND", 30)))
	server.MaxMultipartMemory = 8 << 20 // 8 MiB

	v1 := server.Group("/api")
	v1.Use(middlewares.RequestContextMiddleware())

	routerV1 := v1.Group("/v1")
	{
		webRoutev1.LivenessRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL), nil)
	})

	gin_mode := env.GetString("GIN_MODE", "debug")
	port := env.GetString("PORT", "8080")
	if gin_mode == "debug" || gin_mode == "release" {
		gin.SetMode(gin_mode)
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		if err := server.Run(fmt.Sprintf(":%s", port)); err != nil {
			logger.Error("server stopped", logger.LoggerOptions{Key: "error", Data: err.Error()})
		}
	} else {
		panic(fmt.Sprintf("invalid gin mode used - %s", gin_mode))
	}
}
