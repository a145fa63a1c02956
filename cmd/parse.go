package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/haithamq/finsort/extractor"
	"github.com/haithamq/finsort/extractor/common"
	"github.com/haithamq/finsort/integrations/memory"
)

var (
	parseSender string
	parseBody   string
	parseUser   string
	parseSource string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a single notification message",
	Long: `Parses one raw bank notification and prints the extraction outcome as JSON.
The message body is taken from --message or read from stdin. Nothing is
persisted; the duplicate check runs against an empty in-memory store.`,
	Run: func(cmd *cobra.Command, args []string) {
		body := parseBody
		if body == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("error: reading stdin: %v", err)
			}
			body = string(raw)
		}

		pipeline := extractor.New(pipelineConfig(), memory.New())

		outcome, err := pipeline.Process(context.Background(), common.Message{
			Sender: parseSender,
			Body:   body,
			UserID: parseUser,
			Source: common.Source(parseSource),
		})
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		asJSON, _ := json.Marshal(outcome)
		fmt.Println(string(asJSON))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseSender, "sender", "s", "", "raw sender id, e.g. 'ADIB' (required)")
	parseCmd.Flags().StringVarP(&parseBody, "message", "m", "", "message body (reads stdin if not set)")
	parseCmd.Flags().StringVarP(&parseUser, "user", "u", "local", "user id")
	parseCmd.Flags().StringVar(&parseSource, "source", "manual", "message source: sms, email or manual")

	parseCmd.MarkFlagRequired("sender")
}
