package handler

import (
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
	// Registry receives the HTTP collectors and backs /metrics.
	Registry *prometheus.Registry
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(h.log))

	if cfg.Registry != nil {
		router.Use(middleware.NewMetrics(cfg.Registry).Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
				middleware.RequestIDHeader,
			},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", h.Health)

	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/refresh-token", h.Refresh)

	authed := router.Group("/", middleware.RequireUser(h.auth, h.log))
	authed.GET("/user", h.GetUser)
	authed.PUT("/user", h.EditUser)
	authed.DELETE("/user", h.DeleteUser)

	authed.GET("/tags", h.ListTags)
	authed.POST("/tags", h.CreateTag)
	authed.POST("/tags/multiple", h.CreateTags)
	authed.GET("/tags/:id", h.GetTag)
	authed.PUT("/tags/:id", h.EditTag)
	authed.DELETE("/tags/:id", h.DeleteTag)

	return router
}
