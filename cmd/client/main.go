package main

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "hello-ai",
	Short: "Talk to the hello-ai relay from the terminal",
	Long: `hello-ai sends prompts to a running hello-ai-ui server.

Examples:
  hello-ai ask "what is a goroutine?"
  hello-ai ask --mode qa "what does the onboarding doc say about VPN?"
  hello-ai stream "write a haiku about channels"
  hello-ai tui`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", getenv("RELAY_URL", "http://localhost:3000"), "relay server base URL")
	rootCmd.AddCommand(askCmd(), streamCmd(), tuiCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
