package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"transientmap/internal/models"
	"transientmap/internal/ratelimit"
	"transientmap/internal/routes"
	"transientmap/internal/session"
)

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func main() {
	// Optional .env for local development; real deployments set the env.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Session lifetime is measured in store operations, not wall time: a
	// session expires once SESSION_LIFETIME_TICKS other store touches have
	// happened since it was created or last refreshed. Nothing sweeps
	// expired sessions automatically; POST /api/sessions/sweep does.
	sessions := session.NewStore(envUint("SESSION_LIFETIME_TICKS", 10000))
	limiter := ratelimit.New(
		envInt("LOGIN_MAX_ATTEMPTS", 5),
		envUint("LOGIN_ATTEMPT_LIFETIME_TICKS", 100),
	)
	users := models.NewDirectory()

	ginRoutes := routes.SetupRoutes(routes.Config{
		Users:    users,
		Sessions: sessions,
		Limiter:  limiter,
	})

	port := ":" + envStr("PORT", "8008")

	log.Printf("Session service starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  POST   /api/logout")
	log.Println("  GET    /api/me")
	log.Println("  GET    /api/sessions")
	log.Println("  POST   /api/sessions/sweep")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
