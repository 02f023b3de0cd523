package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/orgdhq/orgd/internal/app"
	iauth "github.com/orgdhq/orgd/internal/auth"
	"github.com/orgdhq/orgd/internal/handlers"
	"github.com/orgdhq/orgd/internal/middleware"
	"github.com/orgdhq/orgd/internal/services"
	"github.com/orgdhq/orgd/internal/tenant"
)

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	tenants, err := tenant.NewStore(db)
	if err != nil {
		return nil, err
	}

	orgSvc, err := services.NewOrganizationService(db, tenants, jwt)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.GET("/", handlers.Home())
	r.GET("/health", handlers.Health())

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	orgHandler := handlers.NewOrganizationHandler(orgSvc)
	authHandler := handlers.NewAuthHandler(orgSvc)

	org := r.Group("/org")
	{
		org.POST("/create", orgHandler.Create)
		org.GET("/get", orgHandler.Get)
		org.PUT("/update", orgHandler.Update)
		org.DELETE("/delete", middleware.Auth(jwt), orgHandler.Delete)
	}

	r.POST("/admin/login", authHandler.Login)

	return r, nil
}
