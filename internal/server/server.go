package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/config"
	"github.com/Malithmadhushantha/asali-frontend/internal/handlers"
	"github.com/Malithmadhushantha/asali-frontend/internal/middleware"
)

// UIServer hosts the localhost JSON surface the shop screens talk to.
type UIServer struct {
	engine *gin.Engine
	server *http.Server
	log    zerolog.Logger
}

func NewUIServer(cfg *config.AppConfig, log zerolog.Logger, handlerSet handlers.HandlerSet) *UIServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowCORSOrigins),
	)

	handlerSet.Register(engine.Group("/api"))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &UIServer{
		engine: engine,
		server: srv,
		log:    log,
	}
}

func (s *UIServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("ui server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func (s *UIServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("ui server shutting down")
	return s.server.Shutdown(ctx)
}
