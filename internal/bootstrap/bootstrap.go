// Package bootstrap performs the host startup sequence: resolve the
// application config, create the application, connect it to the host
// through a bridge.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/bridge"
	"github.com/Rorical/RoriHost/internal/handle"
)

var ErrAlreadyStarted = errors.New("application already started")

type Options struct {
	Location     string
	ProbeVersion bool
	ProbeTimeout time.Duration
	Policy       bridge.OverlapPolicy
	Logger       *zap.Logger
}

// Bootstrapper starts one application for the lifetime of the process
type Bootstrapper struct {
	opts    Options
	prober  *VersionProber
	started atomic.Bool
}

func New(opts Options) *Bootstrapper {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if opts.Policy == "" {
		opts.Policy = bridge.PolicyQueue
	}

	return &Bootstrapper{
		opts:   opts,
		prober: NewVersionProber(opts.ProbeTimeout, opts.Logger.Named("probe")),
	}
}

// ResolveConfig builds the application config. Only an unusable location
// is an error; version lookup problems degrade to handle.UnknownVersion.
func (b *Bootstrapper) ResolveConfig(ctx context.Context) (handle.Config, error) {
	apiURL, err := APIBaseURL(b.opts.Location)
	if err != nil {
		return handle.Config{}, err
	}

	cfg := handle.Config{APIURL: apiURL, AppVersion: handle.UnknownVersion}
	if b.opts.ProbeVersion {
		cfg.AppVersion = b.prober.Probe(ctx, apiURL)
	}

	b.opts.Logger.Info("application config resolved",
		zap.String("apiUrl", cfg.APIURL), zap.String("appVersion", cfg.AppVersion))
	return cfg, nil
}

// Session is a started application and the bridge serving it
type Session struct {
	Config handle.Config
	App    handle.Handle
	Bridge *bridge.Bridge

	done chan error
}

// Wait blocks until the bridge stops
func (s *Session) Wait() error {
	return <-s.done
}

// Start resolves the config and only then creates the application, so the
// application never renders with a partial config. The bridge runs until
// ctx is done.
func (b *Bootstrapper) Start(ctx context.Context, mount handle.Mount, host bridge.HostUI, factory handle.Factory) (*Session, error) {
	// claimed before resolving: a failed start is not retried in-process
	if !b.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}

	cfg, err := b.ResolveConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config: %w", err)
	}

	app, err := factory(mount, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	br := bridge.New(app, host,
		bridge.WithPolicy(b.opts.Policy),
		bridge.WithLogger(b.opts.Logger.Named("bridge")),
	)

	session := &Session{
		Config: cfg,
		App:    app,
		Bridge: br,
		done:   make(chan error, 1),
	}
	go func() {
		session.done <- br.Run(ctx)
	}()

	b.opts.Logger.Info("application mounted", zap.String("mount", mount.ID()))
	return session, nil
}
