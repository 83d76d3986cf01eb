package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flechazo/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	profileH *ProfileHandler,
	matchH *MatchHandler,
	messageH *MessageHandler,
	notificationH *NotificationHandler,
	simulationH *SimulationHandler,
	compatH *CompatibilityHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// Rutas publicas.
	r.POST("/users", userH.CreateUser)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", userH.Logout)

	// Todo lo demas requiere access token.
	authed := r.Group("/", JWTAuthMiddleware(jwtSvc))

	profiles := authed.Group("/profiles")
	profiles.POST("", profileH.CreateProfile)
	profiles.GET("/me", profileH.GetOwnProfile)
	profiles.PUT("/traits", profileH.UpsertTraits)

	matches := authed.Group("/matches")
	matches.GET("", matchH.ListMatches)
	matches.POST("", matchH.CreateMatch)
	matches.GET("/candidates", matchH.DiscoverCandidates)
	matches.GET("/:id/messages", messageH.ListByMatch)

	authed.POST("/messages", messageH.PostMessage)

	notifications := authed.Group("/notifications")
	notifications.GET("", notificationH.List)
	notifications.POST("/:id/read", notificationH.MarkRead)

	simulations := authed.Group("/simulations")
	simulations.POST("/run", simulationH.Run)
	simulations.GET("", simulationH.History)

	compat := authed.Group("/compatibility")
	compat.GET("/report", compatH.GetReport)
	compat.GET("/dashboard", compatH.GetDashboard)
	compat.GET("/trends", compatH.GetTrends)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
