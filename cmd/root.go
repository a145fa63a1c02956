package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/haithamq/finsort/extractor"
	"github.com/haithamq/finsort/extractor/category"
)

// Embedded default configuration (from .finsort.yaml)
const defaultConfigYAML = `
dedupe:
  # How far back the duplicate probe looks for an equivalent record.
  # The same bank event often arrives via both SMS and email within seconds.
  window: 60s
currency:
  default: AED
categories:
# Keyword overrides replace the built-in table, e.g.:
#  - name: Dining
#    keywords: [restaurant, shawarma]
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "finsort",
		Short: "Extract structured transactions from bank notification messages",
		Long: `finsort turns raw SMS/email notifications from UAE banks into structured
transaction records: bank identification, field extraction, merchant
categorization and duplicate suppression.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.finsort.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Add config paths in order of priority
		viper.AddConfigPath(".")  // First check current directory
		viper.AddConfigPath(home) // Then check home directory
		viper.SetConfigName(".finsort")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// pipelineConfig builds the pipeline configuration from viper, falling back
// to the built-in defaults.
func pipelineConfig() extractor.Config {
	cfg := extractor.DefaultConfig()
	if window := viper.GetDuration("dedupe.window"); window > 0 {
		cfg.DuplicateWindow = window
	}
	if currency := viper.GetString("currency.default"); currency != "" {
		cfg.DefaultCurrency = currency
	}
	cfg.Categories = category.FromConfig()
	return cfg
}
