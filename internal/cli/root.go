// Package cli defines the Cobra commands for the SentinAI console, a
// terminal chat client for the backend API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "sentinai-console",
	Short: "Terminal chat client for the SentinAI agent backend",
	Long: `SentinAI console talks to a running SentinAI API. It sends text
queries or files to the processing endpoint and renders the agent's reply
together with the synthesized thinking-step timeline.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "Base URL of the SentinAI API")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
}
