package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	appfx "github.com/amityadav/scout/internal/fx"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,   // Provides: config.Config
		appfx.LoggerModule,   // Provides: zerolog.Logger
		appfx.AIModule,       // Provides: ai.Provider
		appfx.SearchModule,   // Provides: *search.Cascade, news strategy, *search.Normalizer
		appfx.PipelineModule, // Provides: *fetcher.Fetcher, *summary.Summarizer, *agent.Agent
		appfx.ServerModule,   // Starts the HTTP server

		// Use simple console logger for cleaner output
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
