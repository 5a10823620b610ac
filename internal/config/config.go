package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultProfile  = "default"
	DefaultLocation = "http://localhost:8080/"
)

// Profile describes one host page the terminal host can open
type Profile struct {
	Location         string `json:"location"`
	SkipVersionProbe bool   `json:"skip_version_probe,omitempty"`
	OverlapPolicy    string `json:"overlap_policy,omitempty"`
}

type Config struct {
	Profiles      map[string]Profile `json:"profiles"`
	ActiveProfile string             `json:"active_profile"`
	LogLevel      string             `json:"log_level,omitempty"`

	env            Env
	path           string
	currentProfile *Profile
}

// Env holds RORIHOST_* overrides read from the environment
type Env struct {
	Location     string        `envconfig:"LOCATION"`
	LogLevel     string        `envconfig:"LOG_LEVEL"`
	LogFile      string        `envconfig:"LOG_FILE"`
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"5s"`
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the config stored at configPath, creating a
// default one when the file does not exist yet.
func LoadConfigFrom(configPath string) (*Config, error) {
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := envconfig.Process("RORIHOST", &config.env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// GetLocation returns the page location the host boots from
func (c *Config) GetLocation() string {
	if c.env.Location != "" {
		return c.env.Location
	}
	if c.currentProfile == nil || c.currentProfile.Location == "" {
		return DefaultLocation
	}
	return c.currentProfile.Location
}

func (c *Config) ProbeVersion() bool {
	return c.currentProfile == nil || !c.currentProfile.SkipVersionProbe
}

func (c *Config) ProbeTimeout() time.Duration {
	if c.env.ProbeTimeout <= 0 {
		return 5 * time.Second
	}
	return c.env.ProbeTimeout
}

func (c *Config) GetOverlapPolicy() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.OverlapPolicy
}

func (c *Config) GetLogLevel() string {
	if c.env.LogLevel != "" {
		return c.env.LogLevel
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// GetLogFile returns where the terminal host writes its log
func (c *Config) GetLogFile() string {
	if c.env.LogFile != "" {
		return c.env.LogFile
	}
	return filepath.Join(filepath.Dir(c.path), "rorihost.log")
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORIHOST_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORIHOST_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".rorihost", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultProfileValue is the profile written into a fresh config
func DefaultProfileValue() Profile {
	return Profile{Location: DefaultLocation}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			DefaultProfile: DefaultProfileValue(),
		},
		ActiveProfile: DefaultProfile,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = configPath
	}

	return saveConfig(c, c.path)
}

// Use makes name the active profile
func (c *Config) Use(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	return nil
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
