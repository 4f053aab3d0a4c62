// Package api exposes the aggregated snapshot over HTTP: a cached live read,
// an on-demand search, and a health probe.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/aggregator"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
)

type Server struct {
	engine     *gin.Engine
	logger     *zap.Logger
	cfg        *config.Config
	cache      cache.SnapshotCache
	aggregator *aggregator.Aggregator
}

func NewServer(logger *zap.Logger, cfg *config.Config, snapCache cache.SnapshotCache, agg *aggregator.Aggregator) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine:     engine,
		logger:     logger,
		cfg:        cfg,
		cache:      snapCache,
		aggregator: agg,
	}

	engine.GET("/health", s.health)
	engine.GET("/opportunities/live", s.liveOpportunities)
	engine.GET("/opportunities/search", s.searchOpportunities)

	return s
}

// Handler returns the router for mounting into an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
