package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/config"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/handlers"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/middleware"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
// The auth gate runs on every request and decides per path whether a
// credential is required.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, bh *handlers.BookingHandler, mh *handlers.ManifestHandler, logger *zap.Logger) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", cfg.SharedSecretHeader, cfg.BearerHeader, cfg.AltTokenHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.APIKeyAuth(cfg, logger))

	// Open endpoints: banner, health, and capability discovery.
	r.GET("/", handlers.Banner)
	r.GET("/status", handlers.Status)
	r.GET("/mcp.json", mh.Serve)
	r.GET("/.well-known/mcp.json", mh.Serve)
	for _, path := range cfg.HandshakePaths {
		r.GET(path, handlers.Handshake)
		r.POST(path, handlers.Handshake)
	}

	// Booking workflow.
	r.POST("/check", bh.Check)
	r.POST("/create", bh.Create)
	r.POST("/update", bh.Update)
	r.POST("/delete", bh.Delete)
}
