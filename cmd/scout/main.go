// Command scout is a terminal front end for the startup showcase. It also
// hosts the in-memory reference backend used for local development.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/pkg/config"
	"github.com/startupscout/showcase/pkg/logger"
)

var (
	// Global flags
	apiURL     string
	logLevel   string
	jsonOutput bool

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Browse, like and discuss startup showcase projects",
	Long: `scout talks to the startup showcase backend.

Credentials are kept between runs in the configured credential store
(SCOUT_CREDENTIAL_STORE: file, redis or memory) and expire after
SCOUT_SESSION_TTL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.IsDevelopment(),
			Output: cmd.ErrOrStderr(),
		})
		log = logger.For("cli")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (overrides SCOUT_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print machine-readable JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}
