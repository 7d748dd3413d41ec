package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/karnikjan/EasyEvent/internal/container"
	"github.com/karnikjan/EasyEvent/internal/handlers"
	"github.com/karnikjan/EasyEvent/internal/middleware"
	"github.com/karnikjan/EasyEvent/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(corsConfig(container.Config.AllowedOrigins)))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Recovery(container.Logger))
	r.Use(middleware.Auth(container.Tokens, container.Logger))

	r.GET("/ping", handlers.Ping())
	r.POST("/graphql", handlers.GraphQL(container.GraphQL))
	r.GET("/graphql", handlers.GraphQLQuery(container.GraphQL))

	r.NoRoute(staticFallback(container.Config.StaticDir))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"POST", "GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// staticFallback serves the built frontend for unknown GET routes so client
// side routing works. Without a build directory it answers a plain 404.
func staticFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, models.ErrorResponse("not found", c.GetString(middleware.RequestIDKey)))
			return
		}

		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("not found", c.GetString(middleware.RequestIDKey)))
			return
		}

		rel := filepath.FromSlash(strings.TrimPrefix(filepath.Clean("/"+c.Request.URL.Path), "/"))
		if rel != "" {
			asset := filepath.Join(dir, rel)
			if info, err := os.Stat(asset); err == nil && !info.IsDir() {
				c.File(asset)
				return
			}
		}
		c.File(index)
	}
}
