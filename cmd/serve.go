package cmd

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/haithamq/finsort/api"
	"github.com/haithamq/finsort/extractor"
	"github.com/haithamq/finsort/integrations/memory"
	"github.com/haithamq/finsort/integrations/postgres"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Starts the HTTP API server that accepts raw notification messages and
returns extraction outcomes as JSON. Uses PostgreSQL when DATABASE_URL is set,
otherwise an in-memory store that is lost on shutdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure logging for server mode
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		cfg := pipelineConfig()

		var store extractor.Store
		if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			db, err := postgres.Connect(ctx, dbURL)
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}
			db.DedupeWindow = cfg.DuplicateWindow
			store = db
		} else {
			log.Println("DATABASE_URL not set, using in-memory store")
			store = memory.NewWithWindow(cfg.DuplicateWindow)
		}

		// Create API server with configuration
		apiCfg := api.DefaultConfig()
		if servePort != "" {
			apiCfg.Port = ":" + servePort
		}
		apiCfg.LogPrefix = "SERVER: "

		server := api.New(apiCfg, extractor.New(cfg, store))
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
}
