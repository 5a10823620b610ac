package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriHost/internal/app"
	"github.com/Rorical/RoriHost/internal/config"
	"github.com/Rorical/RoriHost/internal/logging"
	"github.com/Rorical/RoriHost/internal/version"
)

var (
	locationFlag string
	profileFlag  string
	policyFlag   string
)

var rootCmd = &cobra.Command{
	Use:     "rorihost",
	Short:   "Terminal host for embedded panel applications",
	Long:    `RoriHost boots a panel application in the terminal and shows its toasts and confirmation dialogs.`,
	Version: version.Version,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if profileFlag != "" {
			if err := cfg.Use(profileFlag); err != nil {
				log.Fatalf("Failed to select profile: %v", err)
			}
		}

		runHost(cfg)
	},
}

// runHost runs the terminal host until the user quits. The host logs to a
// file so the terminal stays clean.
func runHost(cfg *config.Config) {
	logger := logging.NewOrNop(logging.FileConfig(cfg.GetLogLevel(), cfg.GetLogFile()))

	application, err := app.NewApplication(cfg, app.Options{
		Location: locationFlag,
		Policy:   policyFlag,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&locationFlag, "location", "l", "", "page location to boot from (overrides the profile)")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "confirmation overlap policy: queue or reject")
	rootCmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "profile to use for this run")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
