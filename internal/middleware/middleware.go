package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/models"
)

const (
	RequestIDKey = "request_id"
	IdentityKey  = "identity"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(helpers.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// The query string is left out: GET /graphql carries login credentials there.
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		requestID, _ := c.Get(RequestIDKey)

		level := slog.LevelInfo
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.Log(c.Request.Context(), level, "HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// Recovery turns a panic into a logged 500 with the request id.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID := c.GetString(RequestIDKey)

				logger.Error("Panic recovered",
					"request_id", requestID,
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				// Don't return error details to the client
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					models.ErrorResponse("Internal server error", requestID))
			}
		}()
		c.Next()
	}
}

// Auth is soft: it records who is calling when a valid bearer token is sent
// and lets every request through. Operations decide whether they need an identity.
func Auth(tokens helpers.TokenManager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			logger.Debug("Ignoring invalid bearer token",
				"request_id", c.GetString(RequestIDKey),
				"error", err,
			)
			c.Next()
			return
		}

		identity := helpers.Identity{UserID: claims.UserID, Email: claims.Email}
		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(helpers.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
