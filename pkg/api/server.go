// Package api exposes forest builds over HTTP to the three presentation
// surfaces: the collapsible tree view (full forest JSON), the flat directory,
// and the graph canvas feed.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/referralworks/refnet/pkg/logging"
	"github.com/referralworks/refnet/pkg/metrics"
	"github.com/referralworks/refnet/pkg/referral"
)

// Server is the HTTP API server.
type Server struct {
	svc       *referral.Service
	log       logging.Logger
	reg       *metrics.Registry
	cors      CORSConfig
	startTime time.Time

	httpServer *http.Server
}

// CORSConfig controls cross-origin access. An empty origin list disables
// cross-origin requests.
type CORSConfig struct {
	AllowedOrigins []string
}

// ServerOptions carries optional server collaborators.
type ServerOptions struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
	CORS    CORSConfig
}

// NewServer creates an API server over a build service.
func NewServer(svc *referral.Service, opts ServerOptions) *Server {
	log := opts.Logger
	if log == nil {
		log = logging.DefaultLogger()
	}
	return &Server{
		svc:       svc,
		log:       log.With(logging.Component("api")),
		reg:       opts.Metrics,
		cors:      opts.CORS,
		startTime: time.Now(),
	}
}

// Handler builds the routing table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /network", s.handleNetwork)
	mux.HandleFunc("GET /network/directory", s.handleDirectory)
	mux.HandleFunc("GET /network/graph", s.handleGraph)
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.reg != nil {
		mux.Handle("GET /metrics", s.reg.Handler())
	}

	var h http.Handler = mux
	h = s.metricsMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.corsMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

// Start runs the server until the context is canceled, then shuts down
// gracefully within the given timeout.
func (s *Server) Start(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", logging.String("addr", addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
