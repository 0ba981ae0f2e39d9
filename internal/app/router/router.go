// Package router wires every HTTP route onto a gin engine.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "shopping_backend/internal/feature/auth/transport/handler"
	producthandler "shopping_backend/internal/feature/product/transport/handler"
	platformhandler "shopping_backend/internal/platform/http/handler"
	"shopping_backend/internal/platform/http/middleware"
	jwtmw "shopping_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Health   *platformhandler.HealthHandler
	Auth     *authhandler.AuthHandler
	Products *producthandler.ProductHandler
}

// NewRouter builds the engine. corsOrigins may contain "*" to allow any origin.
func NewRouter(corsOrigins []string, verifier jwtmw.TokenVerifier, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		cors.New(corsConfig(corsOrigins)),
	)

	// Public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	r.GET("/product/getAll", h.Products.List)
	r.GET("/product/:id", h.Products.Get)

	// Bearer token required
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(verifier))
	{
		protected.GET("/auth/me", h.Auth.Me)

		protected.POST("/product/add", h.Products.Create)
		protected.PUT("/product/update/:id", h.Products.Update)
		protected.DELETE("/product/delete/:id", h.Products.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
