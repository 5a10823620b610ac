package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriHost/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the host",
	Long:  `Switch to the specified profile and immediately boot its page.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		// Load config
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runHost(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
