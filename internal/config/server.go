package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// RedisServer is one Redis instance exposed by the API
type RedisServer struct {
	Name     string
	Host     string
	Port     int
	DB       int    `json:",omitempty"`
	Password string `json:",omitempty"`
}

// Addr returns host:port
func (s RedisServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ServerConfig configures the serve command
type ServerConfig struct {
	Servers   []RedisServer
	URLPrefix string
	StaticDir string `json:",omitempty"`
}

var ErrDuplicateServer = errors.New("server names should be unique")

// LoadServerConfig reads the JSON server config at path
func LoadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	var cfg ServerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.URLPrefix = normalizePrefix(cfg.URLPrefix)

	return &cfg, nil
}

func (c *ServerConfig) Validate() error {
	seen := make(map[string]bool, len(c.Servers))
	for _, server := range c.Servers {
		if server.Name == "" {
			return fmt.Errorf("server %s has no name", server.Addr())
		}
		if seen[server.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateServer, server.Name)
		}
		seen[server.Name] = true
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
