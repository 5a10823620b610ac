package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/api"
	"github.com/Rorical/RoriHost/internal/config"
	"github.com/Rorical/RoriHost/internal/logging"
	"github.com/Rorical/RoriHost/internal/version"
)

var (
	serveConfigPath string
	serveAddr       string
	serveDemo       bool
	serveLogLevel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the key browser API",
	Long:  `Serve the HTTP API the default application talks to, backed by the Redis servers in the server config.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(logging.ConsoleConfig(serveLogLevel))
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, logger); err != nil {
			logger.Fatal("serve failed", zap.Error(err))
		}
	},
}

func serve(ctx context.Context, logger *zap.Logger) error {
	opts := api.Options{
		Addr:    serveAddr,
		Version: version.Version,
		Logger:  logger.Named("api"),
	}

	var store api.KeyStore
	switch {
	case serveDemo:
		store = demoStore()
		logger.Info("serving demo data")
	case serveConfigPath != "":
		serverCfg, err := config.LoadServerConfig(serveConfigPath)
		if err != nil {
			return err
		}
		opts.URLPrefix = serverCfg.URLPrefix
		opts.StaticDir = serverCfg.StaticDir

		redisStore := api.NewRedisStore(serverCfg.Servers)
		defer func() { _ = redisStore.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			logger.Warn("some redis servers are unreachable", zap.Error(err))
		}
		cancel()
		store = redisStore
	default:
		return fmt.Errorf("either --config or --demo is required")
	}

	return api.NewServer(store, opts).Run(ctx)
}

func demoStore() *api.MemoryStore {
	store := api.NewMemoryStore()
	for i := 1; i <= 250; i++ {
		store.Set("demo", fmt.Sprintf("user:%d", i), "user")
	}
	store.Set("demo", "session:current", "s")
	store.Set("demo", "config:feature-flags", "{}")
	store.AddServer("empty")
	return store
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "server config JSON file")
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "address to listen on")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "serve in-memory demo data instead of Redis")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "log level")

	rootCmd.AddCommand(serveCmd)
}
