// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motohub/internal/http/handlers"
	"motohub/internal/http/middleware"
	"motohub/internal/modules/pricing"
	"motohub/internal/modules/ratelimit"
)

func NewRouter(
	pricingService *pricing.Service,
	rateLimitService *ratelimit.Service,
	allowedOrigins []string,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Logging(log),
		middleware.Recovery(log),
		middleware.CORS(allowedOrigins),
	)
	r.NoRoute(handlers.NotFound)

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	api.GET("/ping", handlers.Ping)

	pricingHandler := handlers.NewPricingHandler(pricingService)
	pricingGroup := api.Group("/pricing")
	pricingGroup.GET("/cities", pricingHandler.Cities)

	quotes := pricingGroup.Group("")
	if rateLimitService != nil {
		quotes.Use(middleware.RateLimit(rateLimitService))
	}
	quotes.POST("/on-road", pricingHandler.OnRoad)
	quotes.POST("/ownership", pricingHandler.Ownership)
	quotes.POST("/emi", pricingHandler.EMI)

	return r
}
