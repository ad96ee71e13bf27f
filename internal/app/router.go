// Package app assembles the gin engine.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/handler"
	"storefront/internal/middleware"
)

// Deps: всё, что нужно роутеру. Tracer и Ping необязательны.
type Deps struct {
	SessionName  string
	SessionStore sessions.Store
	Tracer       trace.Tracer
	Ping         func(ctx context.Context) error

	Products   handler.ProductService
	Settings   handler.SettingService
	Uploads    handler.UploadService
	Auth       handler.AuthService
	Storefront handler.StorefrontService
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	// Logger снаружи Recovery: паника логируется как 500 с request_id
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	if d.Tracer != nil {
		r.Use(middleware.Tracing(d.Tracer))
	}
	r.Use(sessions.Sessions(d.SessionName, d.SessionStore))

	// health
	r.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	auth := middleware.RequireAdmin()

	handler.NewProductHandler(d.Products).RegisterRoutes(api, auth)
	handler.NewSettingHandler(d.Settings).RegisterRoutes(api, auth)
	handler.NewUploadHandler(d.Uploads).RegisterRoutes(api, auth)
	handler.NewAuthHandler(d.Auth).RegisterRoutes(api)
	handler.NewStorefrontHandler(d.Storefront).RegisterRoutes(api)

	return r
}
