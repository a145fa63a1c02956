package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/haithamq/finsort/integrations/postgres"
)

var (
	recentUser  string
	recentLimit int
	recentDBURL string
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List a user's latest extracted transactions",
	Run: func(cmd *cobra.Command, args []string) {
		if recentDBURL == "" {
			recentDBURL = os.Getenv("DATABASE_URL")
			if recentDBURL == "" {
				log.Fatal("error: --db-url or DATABASE_URL environment variable is required")
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.Connect(ctx, recentDBURL)
		if err != nil {
			log.Fatalf("error: database connection failed: %v", err)
		}
		defer db.Close()

		transactions, err := db.RecentByUser(ctx, recentUser, recentLimit)
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		asJSON, _ := json.Marshal(transactions)
		fmt.Println(string(asJSON))
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)

	recentCmd.Flags().StringVarP(&recentUser, "user", "u", "", "User id (required)")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 20, "Maximum number of transactions")
	recentCmd.Flags().StringVar(&recentDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")

	recentCmd.MarkFlagRequired("user")
}
