package app

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/bootstrap"
	"github.com/Rorical/RoriHost/internal/bridge"
	"github.com/Rorical/RoriHost/internal/config"
	"github.com/Rorical/RoriHost/internal/dispatcher"
	"github.com/Rorical/RoriHost/internal/handle"
	"github.com/Rorical/RoriHost/internal/hostui"
	"github.com/Rorical/RoriHost/internal/keybrowser"
	"github.com/Rorical/RoriHost/internal/models"
)

// Options overrides what the active profile says
type Options struct {
	Location string
	Policy   string
	Factory  handle.Factory
	Logger   *zap.Logger
}

// Application manages the complete host lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	dispatcher *dispatcher.EventDispatcher
	host       *hostui.Host
	boot       *bootstrap.Bootstrapper
	factory    handle.Factory
	ctx        context.Context
	cancel     context.CancelFunc
	model      *AppModel
}

type AppModel struct {
	appModel models.AppModel
	host     *hostui.Host
	boot     tea.Cmd
	session  *bootstrap.Session
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	location := opts.Location
	if location == "" {
		location = cfg.GetLocation()
	}
	policyName := opts.Policy
	if policyName == "" {
		policyName = cfg.GetOverlapPolicy()
	}
	policy, err := bridge.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}

	factory := opts.Factory
	if factory == nil {
		factory = keybrowser.Factory(keybrowser.Options{Logger: logger.Named("keybrowser")})
	}

	disp := dispatcher.NewEventDispatcher()
	host := hostui.New(disp, hostui.Options{})
	boot := bootstrap.New(bootstrap.Options{
		Location:     location,
		ProbeVersion: cfg.ProbeVersion(),
		ProbeTimeout: cfg.ProbeTimeout(),
		Policy:       policy,
		Logger:       logger.Named("bootstrap"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		config:     cfg,
		logger:     logger,
		dispatcher: disp,
		host:       host,
		boot:       boot,
		factory:    factory,
		ctx:        ctx,
		cancel:     cancel,
	}
	app.model = &AppModel{
		appModel: createInitialAppModel(),
		host:     host,
		boot:     app.bootCmd(),
	}
	return app, nil
}

// bootCmd runs the bootstrap off the UI loop; the loading view stays up
// until it reports back.
func (app *Application) bootCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := app.boot.Start(app.ctx, app.host.Region(), app.host, app.factory)
		if err != nil {
			app.logger.Error("bootstrap failed", zap.Error(err))
		}
		return bootedMsg(session, err)
	}
}

func (app *Application) Start() error {
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	app.dispatcher.Start(p)

	_, err := p.Run()
	return err
}

func (app *Application) Stop() {
	app.cancel()
	if session := app.model.session; session != nil {
		if closer, ok := session.App.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				app.logger.Warn("application did not close cleanly", zap.Error(err))
			}
		}
		if err := session.Wait(); err != nil {
			app.logger.Warn("bridge stopped with error", zap.Error(err))
		}
	}
	app.dispatcher.Stop()
	_ = app.logger.Sync()
}

func createInitialAppModel() models.AppModel {
	return models.AppModel{
		Status:  "Starting",
		Booting: true,
	}
}
