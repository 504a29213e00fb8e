package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "gatepass/internal/config"
	"gatepass/internal/domain"
	h "gatepass/internal/http/handlers"
	"gatepass/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Setup(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	police := middleware.PoliceAuth(env.PoliceSecret, env.PoliceSecretHash)

	// legacy paths kept for existing dashboard and scanner builds
	r.POST("/create_trip_qr", h.CreateTripQR)
	r.GET("/get_all_trips", h.GetAllTrips)
	r.POST("/verify_qr", police, h.VerifyQR)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		trips := api.Group("/trips")
		trips.GET("", h.GetAllTrips)
		trips.POST("/qr", h.CreateTripQR)

		api.POST("/verify", police, h.VerifyQR)

		api.GET("/passes/:ref/sheet", h.GetPassSheet)

		api.GET("/track", h.Track)
	}

	h.SetRouter(r)
	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", domain.PoliceAuthHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(env.CORSOrigins) > 0 {
		cfg.AllowOrigins = env.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
