package server

import (
	"context"
	"net/http"

	"github.com/gigmarket/backend/internal/config"
)

const maxHeaderBytes = 1 << 20

type Server struct {
	httpServer *http.Server
}

// NewServer applies the configured timeout to whole requests, so it has to cover
// the slowest ID image upload.
func NewServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.HttpServer.Port,
			Handler:           handler,
			ReadHeaderTimeout: cfg.HttpServer.Timeout,
			ReadTimeout:       cfg.HttpServer.Timeout,
			WriteTimeout:      cfg.HttpServer.Timeout,
			IdleTimeout:       cfg.HttpServer.IdleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
