package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cargoflow/cargoflow/internal/broadcast"
	"github.com/cargoflow/cargoflow/internal/server/http/handlers"
	"github.com/cargoflow/cargoflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, verifier middleware.TokenVerifier, hub *broadcast.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	shipmentHandler := handlers.NewShipmentHandler(facade)
	bidHandler := handlers.NewBidHandler(facade)
	registrationHandler := handlers.NewRegistrationHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	taskHandler := handlers.NewTaskHandler(facade)
	historyHandler := handlers.NewHistoryHandler(facade)
	streamHandler := handlers.NewStreamHandler(hub, logger)

	api := engine.Group("/api")
	api.GET("/track/:publicId", shipmentHandler.Track)
	api.GET("/carriers/:carrierId/bids", bidHandler.ByCarrier)
	api.GET("/users/:userId/notifications", notificationHandler.List)

	shipments := api.Group("/shipments")
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.List)
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.PUT("/:id", shipmentHandler.Update)
	shipments.DELETE("/:id", shipmentHandler.Delete)
	shipments.POST("/:id/award", shipmentHandler.Award)
	shipments.GET("/:id/history", historyHandler.History)
	shipments.POST("/:id/bids", bidHandler.Place)
	shipments.GET("/:id/bids", bidHandler.List)
	shipments.POST("/:id/registrations", registrationHandler.Register)
	shipments.GET("/:id/registrations", registrationHandler.List)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.ServiceAuthRequired(verifier))
	tasks.POST("/go-live", taskHandler.GoLive)
	tasks.POST("/close-bidding", taskHandler.CloseBidding)

	engine.GET("/ws/shipments/:publicId", streamHandler.Watch)

	return engine
}
