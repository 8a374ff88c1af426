package httpapi

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skintelect/skintelect/internal/logger"
	"github.com/skintelect/skintelect/internal/ratelimit"
)

// Rate limit response headers.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
	HeaderRetryAfter    = "Retry-After"
)

// requestLogger writes one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", ratelimit.ClientIP(c.Request)),
		}
		log := logger.Zap().Named("http")
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// recovery turns a panic into a 500 envelope.
func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, CodeInternal, MessageInternal)
	})
}

// corsMiddleware allows the configured origins. "*" allows any origin.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{HeaderRateLimit, HeaderRateRemaining, HeaderRateReset, HeaderRetryAfter},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// observe records request counts and latency by matched route.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		s.opts.Metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// limit enforces bucket's budget for the calling client.
func (s *Server) limit(bucket ratelimit.Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Limiter == nil {
			c.Next()
			return
		}

		d := s.opts.Limiter.Allow(bucket, ratelimit.ClientIP(c.Request))
		h := c.Writer.Header()
		if d.Limit > 0 {
			h.Set(HeaderRateLimit, strconv.Itoa(d.Limit))
			h.Set(HeaderRateRemaining, strconv.Itoa(d.Remaining))
			h.Set(HeaderRateReset, strconv.FormatInt(d.Reset.Unix(), 10))
		}
		if !d.Allowed {
			h.Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			if s.opts.Metrics != nil {
				s.opts.Metrics.RateLimited(string(bucket))
			}
			logger.Debug("rate limited %s in %s", ratelimit.ClientIP(c.Request), bucket)
			abortWithError(c, http.StatusTooManyRequests, CodeRateLimited, MessageRateLimited)
			return
		}
		c.Next()
	}
}
