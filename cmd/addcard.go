package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/haithamq/finsort/integrations/postgres"
)

var (
	addCardUser     string
	addCardLastFour string
	addCardLabel    string
	addCardDBURL    string
)

var lastFourRegex = regexp.MustCompile(`^\d{4}$`)

var addCardCmd = &cobra.Command{
	Use:   "addcard",
	Short: "Register a card for transaction matching",
	Long: `Registers a card's last four digits for a user so extracted transactions
can be matched to it. Banks that print only three trailing digits are matched
against the suffix of the registered last four.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		if !lastFourRegex.MatchString(addCardLastFour) {
			log.Fatal("error: --last-four must be exactly 4 digits")
		}
		if addCardDBURL == "" {
			addCardDBURL = os.Getenv("DATABASE_URL")
			if addCardDBURL == "" {
				log.Fatal("error: --db-url or DATABASE_URL environment variable is required")
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.Connect(ctx, addCardDBURL)
		if err != nil {
			log.Fatalf("error: database connection failed: %v", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatalf("error: schema creation failed: %v", err)
		}

		id, err := db.AddCard(ctx, addCardUser, addCardLastFour, addCardLabel)
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		fmt.Printf("Card %s registered for %s (****%s)\n", id, addCardUser, addCardLastFour)
	},
}

func init() {
	rootCmd.AddCommand(addCardCmd)

	addCardCmd.Flags().StringVarP(&addCardUser, "user", "u", "", "User id (required)")
	addCardCmd.Flags().StringVar(&addCardLastFour, "last-four", "", "Last four digits of the card (required)")
	addCardCmd.Flags().StringVar(&addCardLabel, "label", "", "Optional card label, e.g. 'ADIB Cashback Visa'")
	addCardCmd.Flags().StringVar(&addCardDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")

	addCardCmd.MarkFlagRequired("user")
	addCardCmd.MarkFlagRequired("last-four")
}
