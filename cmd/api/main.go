package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"microgrid-env/internal/api/handlers"
	"microgrid-env/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	sessionTTL := 30 * time.Minute
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sessionTTL = parsed
		} else {
			log.Printf("Ignoring invalid SESSION_TTL %q: %v", raw, err)
		}
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	store := handlers.NewSessionStore(sessionTTL)
	sessionHandler := handlers.NewSessionHandler(store)
	episodeHandler := handlers.NewEpisodeHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": store.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/sessions", sessionHandler.CreateSession)
		api.POST("/sessions/:id/reset", sessionHandler.ResetSession)
		api.POST("/sessions/:id/step", sessionHandler.StepSession)
		api.GET("/sessions/:id/observation", sessionHandler.GetObservation)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)

		api.POST("/episodes", episodeHandler.RunEpisode)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting microgrid environment API on %s (session ttl %s)", addr, sessionTTL)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
