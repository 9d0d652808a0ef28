package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"titanic/adapters/postgres"
	"titanic/adapters/predictapi"
	"titanic/app"
	"titanic/internal/config"
	"titanic/internal/database"
	"titanic/internal/insights"
	"titanic/internal/theme"
	"titanic/ports"
	"titanic/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Theme preferences persist only when a database is configured
	var store ports.ThemeStore
	db, err := database.Open(ctx, appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if db != nil {
		defer db.Close()
		store = postgres.NewThemeRepository(db)
		log.Printf("Theme preferences stored in %s", appConfig.Database.Driver())
	} else {
		log.Println("No database configured, theme preferences live in the cookie only")
	}

	// Page sessions are evicted once idle for the session TTL
	pages := app.NewPageRegistry(appConfig.Server.SessionTTL)
	go pages.Run(ctx, appConfig.Server.SessionTTL/4)

	backends := predictapi.Factory(appConfig.Backend.Timeout)

	server, err := ui.NewServer(ui.Deps{
		Config:    appConfig,
		Pages:     pages,
		Predictor: app.NewPredictorController(backends.Predictors()),
		Themes:    theme.NewController(store),
		Backends:  backends,
		Insights:  insights.Load(appConfig.Insights.DatasetPath),
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start the admin router for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("🚀 Performance profiling server starting on :%s", appConfig.Profiling.Port)
			log.Printf("💡 View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, ui.NewAdminRouter(pages)); err != nil {
				log.Printf("❌ pprof server failed: %v", err)
			}
		}()
	}

	if appConfig.Backend.InjectedOrigin != "" {
		log.Printf("Prediction backend injected: %s", appConfig.Backend.InjectedOrigin)
	}

	// Start the server
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
