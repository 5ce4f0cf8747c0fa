package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/wassalha/wassalha/internal/observability"
	"github.com/wassalha/wassalha/internal/server/http/handlers"
	"github.com/wassalha/wassalha/internal/server/http/middleware"
	"github.com/wassalha/wassalha/internal/server/ws"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, wsHandler *ws.Handler, metrics *observability.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ObserveRequests(metrics))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	requestHandler := handlers.NewRequestHandler(facade)
	offerHandler := handlers.NewOfferHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, facade)
	processHandler := handlers.NewProcessHandler(facade)
	sponsorshipHandler := handlers.NewSponsorshipHandler(facade)
	pickupHandler := handlers.NewPickupHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/requests", requestHandler.Create)
	authed.GET("/requests", requestHandler.List)
	authed.GET("/requests/:id/offers", requestHandler.Offers)

	authed.POST("/offers", offerHandler.Make)
	authed.PATCH("/offers/:id/status", offerHandler.UpdateStatus)
	authed.POST("/offers/:id/accept/retry", offerHandler.RetryAccept)

	authed.POST("/orders", orderHandler.Create)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	authed.GET("/process", processHandler.List)
	authed.GET("/process/:id", processHandler.Get)
	authed.GET("/process/:id/route", processHandler.Route)

	authed.GET("/sponsorships", sponsorshipHandler.ListActive)
	authed.POST("/sponsorship-process/initiate", sponsorshipHandler.Initiate)
	authed.GET("/sponsorship-process/:id", sponsorshipHandler.Get)
	authed.PATCH("/sponsorship-process/:id/status", sponsorshipHandler.UpdateStatus)
	authed.POST("/sponsorship-process/verify", sponsorshipHandler.Verify)
	authed.POST("/sponsorship-process/:id/request-new-photo", sponsorshipHandler.RequestNewPhoto)

	authed.POST("/pickup", pickupHandler.Schedule)
	authed.PUT("/pickup/status", pickupHandler.UpdateStatus)
	authed.POST("/pickup/scan", pickupHandler.Scan)

	authed.GET("/notifications", notificationHandler.List)
	authed.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	engine.GET("/ws", wsHandler.Serve)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	return engine
}
