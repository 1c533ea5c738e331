// README: API gateway; builds the gin engine and delegates to module services.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motohub/internal/modules/pricing"
	"motohub/internal/modules/ratelimit"
)

type ServerDeps struct {
	Pricing        *pricing.Service
	RateLimit      *ratelimit.Service
	AllowedOrigins []string
	Log            *zap.Logger
}

type Server struct {
	pricing        *pricing.Service
	rateLimit      *ratelimit.Service
	allowedOrigins []string
	log            *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		pricing:        deps.Pricing,
		rateLimit:      deps.RateLimit,
		allowedOrigins: deps.AllowedOrigins,
		log:            log,
	}
}

// Routes returns the engine. A nil RateLimit service disables throttling.
func (s *Server) Routes() *gin.Engine {
	return NewRouter(s.pricing, s.rateLimit, s.allowedOrigins, s.log)
}
