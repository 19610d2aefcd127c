// Package middleware Cross-cutting HTTP concerns: request ids, access
// logging, panic recovery, CORS, rate limiting and token authentication.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/juanpineyrob/dscommerce/api/response"
	"github.com/juanpineyrob/dscommerce/config"
	"github.com/juanpineyrob/dscommerce/domain/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
	"github.com/juanpineyrob/dscommerce/pkg/errors"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// RequestIDHeader request id header.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns or propagates the request id. The id also travels on
// the request context so lower layers (SQL logging included) can tag
// their output with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(
			persistence.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// Logging logs each request after completion, leveled by status class.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		log := logger.WithRequestID(response.GetRequestID(c))

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP Request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// Recovery converts panics into a 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				reqID := response.GetRequestID(c)

				logger.Error("Panic recovered",
					zap.String("request_id", reqID),
					zap.Any("error", recovered),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Success:   false,
					Error:     string(errors.CodeInternal),
					Message:   "An unexpected error occurred",
					Code:      http.StatusInternalServerError,
					RequestID: reqID,
				})
			}
		}()

		c.Next()
	}
}

// CORS applies the configured CORS policy.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, o := range cfg.AllowOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}
		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
		c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimiter per-client-IP token buckets.
type RateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{rate: rate.Limit(r), burst: burst}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(ip, limiter)
	return actual.(*rate.Limiter)
}

// RateLimit rejects clients that exceed the configured rate with 429.
func RateLimit(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := NewRateLimiter(cfg.Rate, cfg.Burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.getLimiter(ip).Allow() {
			reqID := response.GetRequestID(c)

			logger.Warn("Rate limit exceeded",
				zap.String("request_id", reqID),
				zap.String("client_ip", ip))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Success:   false,
				Error:     string(errors.CodeTooManyRequest),
				Message:   "Too many requests, please try again later",
				Code:      http.StatusTooManyRequests,
				RequestID: reqID,
			})
			return
		}

		c.Next()
	}
}

// Auth verifies the Bearer token and threads the principal through the
// request context. Requests without a valid token are rejected with 401.
func Auth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromHeader(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
				Success:   false,
				Error:     string(errors.CodeUnauthorized),
				Message:   "Authentication required",
				Code:      http.StatusUnauthorized,
				RequestID: response.GetRequestID(c),
			})
			return
		}

		c.Request = c.Request.WithContext(
			user.ContextWithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// RequireAdmin allows only principals holding the admin role. Must run
// after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := user.PrincipalFromContext(c.Request.Context())
		if !ok || !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Success:   false,
				Error:     string(errors.CodeForbidden),
				Message:   "Access denied",
				Code:      http.StatusForbidden,
				RequestID: response.GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}

func principalFromHeader(c *gin.Context, tokens *security.TokenManager) (user.Principal, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return user.Principal{}, false
	}

	principal, err := tokens.Verify(strings.TrimPrefix(header, prefix))
	if err != nil {
		return user.Principal{}, false
	}
	return principal, true
}
