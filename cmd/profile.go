package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriHost/internal/bootstrap"
	"github.com/Rorical/RoriHost/internal/bridge"
	"github.com/Rorical/RoriHost/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage host profiles",
	Long:  `Manage the pages the host can boot and how it talks to them.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Location: %s\n", profile.Location)
			printProfileOptions(profile, "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Location: %s\n", profile.Location)
		if apiURL, err := bootstrap.APIBaseURL(profile.Location); err == nil {
			fmt.Printf("API URL: %s\n", apiURL)
		}
		printProfileOptions(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.DefaultProfileValue())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		// Add profile to config
		cfg.Profiles[profileName] = profile

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			// Let user select from existing profiles
			names := profileNames(cfg, "")
			if len(names) == 0 {
				log.Fatalf("No profiles available to edit")
			}

			prompt := promptui.Select{
				Label: "Select profile to edit",
				Items: names,
			}
			_, profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err = promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		// Update profile in config
		cfg.Profiles[profileName] = profile

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			// Let user select from existing profiles
			names := profileNames(cfg, "")
			if len(names) == 0 {
				log.Fatalf("No profiles available to delete")
			}

			prompt := promptui.Select{
				Label: "Select profile to delete",
				Items: names,
			}
			_, profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		// Confirm deletion
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		_, err = confirmPrompt.Run()
		if err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		// Check if we're deleting the active profile
		if cfg.ActiveProfile == profileName {
			// Find another profile to make active
			if others := profileNames(cfg, profileName); len(others) > 0 {
				cfg.ActiveProfile = others[0]
			}
			// If this was the last profile, create a new default one
			if len(cfg.Profiles) == 1 {
				cfg.ActiveProfile = "default"
				cfg.Profiles["default"] = config.DefaultProfileValue()
			}
		}

		// Delete the profile
		delete(cfg.Profiles, profileName)

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			// Let user select from existing profiles
			names := profileNames(cfg, cfg.ActiveProfile)
			if len(names) == 0 {
				fmt.Println("No other profiles available to switch to")
				return
			}

			prompt := promptui.Select{
				Label: "Select profile to switch to",
				Items: names,
			}
			_, profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// profileNames lists profile names in order, leaving out skip
func profileNames(cfg *config.Config, skip string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func printProfileOptions(profile config.Profile, indent string) {
	probe := "Yes"
	if profile.SkipVersionProbe {
		probe = "No"
	}
	fmt.Printf("%sProbe version: %s\n", indent, probe)

	policy := profile.OverlapPolicy
	if policy == "" {
		policy = string(bridge.PolicyQueue)
	}
	fmt.Printf("%sOverlap policy: %s\n", indent, policy)
}

// promptProfile asks for every profile field, offering current as default
func promptProfile(current config.Profile) (config.Profile, error) {
	profile := current

	locationPrompt := promptui.Prompt{
		Label:   "Location",
		Default: current.Location,
		Validate: func(input string) error {
			_, err := bootstrap.BaseURL(input)
			return err
		},
	}
	location, err := locationPrompt.Run()
	if err != nil {
		return current, err
	}
	profile.Location = location

	probePrompt := promptui.Select{
		Label: "Probe application version on start",
		Items: []string{"Yes", "No"},
	}
	if current.SkipVersionProbe {
		probePrompt.CursorPos = 1
	}
	_, probe, err := probePrompt.Run()
	if err != nil {
		return current, err
	}
	profile.SkipVersionProbe = probe == "No"

	policies := []string{string(bridge.PolicyQueue), string(bridge.PolicyReject)}
	policyPrompt := promptui.Select{
		Label: "While a confirmation is open, new requests",
		Items: policies,
	}
	if current.OverlapPolicy == string(bridge.PolicyReject) {
		policyPrompt.CursorPos = 1
	}
	_, policy, err := policyPrompt.Run()
	if err != nil {
		return current, err
	}
	profile.OverlapPolicy = policy

	return profile, nil
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}