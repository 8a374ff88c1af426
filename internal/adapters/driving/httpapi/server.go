package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skintelect/skintelect/internal/logger"
	"github.com/skintelect/skintelect/internal/metrics"
	"github.com/skintelect/skintelect/internal/ratelimit"
)

const (
	defaultAddr              = ":8080"
	defaultReadHeaderTimeout = 10 * time.Second
	shutdownTimeout          = 5 * time.Second
)

// Options configures the server. Limiter and Metrics are optional; without
// them requests are not limited and /metrics is not served.
type Options struct {
	Addr              string
	CORSOrigins       []string
	ReadHeaderTimeout time.Duration
	Limiter           *ratelimit.Limiter
	Metrics           *metrics.Registry
}

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	opts   Options
	engine *gin.Engine
}

// NewServer creates a server with every route registered.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	s := &Server{ports: ports, opts: opts}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(recovery(), requestLogger(), corsMiddleware(s.opts.CORSOrigins), s.observe())

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, CodeNotFound, MessageNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		abortWithError(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, MessageMethodNotAllowed)
	})

	if s.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.opts.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/analyze", s.limit(ratelimit.BucketAnalysis), s.analyze)

	search := api.Group("/search", s.limit(ratelimit.BucketSearch))
	{
		search.GET("/ingredients", s.suggestIngredients)
		search.GET("/products", s.suggestProducts)
	}

	catalog := api.Group("", s.limit(ratelimit.BucketAPI))
	{
		catalog.GET("/ingredients", s.listIngredients)
		catalog.GET("/ingredients/:slug", s.getIngredient)
		catalog.GET("/products", s.listProducts)
		catalog.GET("/products/:slug", s.getProduct)
		catalog.GET("/products/:slug/related", s.relatedProducts)
		catalog.GET("/products/:slug/offers", s.productOffers)
		catalog.GET("/products/:slug/safety", s.productSafety)
	}

	api.GET("/affiliate/click", s.limit(ratelimit.BucketAffiliate), s.affiliateClick)

	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, waiting for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("HTTP API listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	<-errCh
	logger.Info("HTTP API stopped")
	return nil
}
