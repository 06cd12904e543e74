package server

import (
	"net/http"
	"time"

	"github.com/danmuck/huffctl/internal/auth"
	"github.com/danmuck/huffctl/internal/codec"
	"github.com/danmuck/huffctl/internal/config"
	"github.com/danmuck/huffctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Server exposes the codec over HTTP.
type Server struct {
	Name     string    `json:"name"`
	Addr     string    `json:"addr"`
	Appeared time.Time `json:"appeared"`

	maxBody int64
	opts    codec.Options
	guard   gin.HandlersChain
	router  *gin.Engine
}

func Appear(cfg config.ServerConfig) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.CorsOrigins),
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", observability.RequestIDHeader},
		ExposeHeaders: []string{SymbolsHeader, observability.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}
	opts := codec.DefaultOptions()
	if cfg.BufferSize > 0 {
		opts.BufferSize = cfg.BufferSize
	}

	var guard gin.HandlersChain
	if cfg.AuthToken != "" {
		guard = append(guard, auth.Require(auth.StaticToken{Token: cfg.AuthToken}))
	}

	return &Server{
		Name:     cfg.Name,
		Addr:     cfg.Addr,
		Appeared: time.Now(),
		maxBody:  maxBody,
		opts:     opts,
		guard:    guard,
		router:   r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	codecRoutes := s.router.Group("/", s.guard...)
	codecRoutes.POST("/encode", s.handleEncode)
	codecRoutes.POST("/decode", s.handleDecode)
	codecRoutes.POST("/codebook", s.handleCodebook)
	codecRoutes.POST("/inspect", s.handleInspect)
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("service", s.Name).Str("addr", s.Addr).Bool("auth", len(s.guard) > 0).Msg("serving")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
