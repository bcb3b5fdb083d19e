package http

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/minigramm/internal/store"
	"github.com/sujalbistaa/minigramm/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, feed store.FeedStore, hub *ws.Hub) {

	// --- Dependencies ---
	env := &Env{Store: feed, Hub: hub}

	// --- Middleware ---
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// CORS Middleware
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*" // Default to allow all for local dev
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go func() {
		// Periodically drop idle visitors so the map doesn't grow forever.
		for {
			time.Sleep(10 * time.Minute)
			limiter.mu.Lock()
			for ip, v := range limiter.visitors {
				if v.Allow() {
					delete(limiter.visitors, ip)
				}
			}
			limiter.mu.Unlock()
		}
	}()

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.GET("/posts", env.GetPosts)
		api.POST("/posts", RateLimitMiddleware(limiter), env.CreatePost)
		api.POST("/posts/:id/react", env.ReactToPost)
		if os.Getenv("X_ADMIN_TOKEN") != "" {
			api.POST("/seed", AdminAuthMiddleware(), env.SeedPosts)
		} else {
			log.Println("X_ADMIN_TOKEN not set, seed endpoint disabled")
		}
	}

	// --- Health Check ---
	router.GET("/health", env.Health)

	// --- WebSocket Route ---
	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c.Writer, c.Request)
	})

	// --- Serve Frontend ---
	// This MUST come AFTER the API routes.
	router.StaticFile("/", "./public/index.html")
}
