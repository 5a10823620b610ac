// Package keybrowser is the application RoriHost embeds by default: a
// browser for the keys of the Redis servers behind the API.
package keybrowser

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/eventbus"
	"github.com/Rorical/RoriHost/internal/handle"
)

const (
	defaultMask    = "*"
	defaultTimeout = 10 * time.Second
)

type Options struct {
	Mask    string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Factory returns a handle.Factory creating browsers with opts
func Factory(opts Options) handle.Factory {
	return func(mount handle.Mount, cfg handle.Config) (handle.Handle, error) {
		return New(mount, cfg, opts)
	}
}

// Browser is a running key browser. All state is owned by its loop
// goroutine; keys and dialog outcomes reach it through channels.
type Browser struct {
	mount  handle.Mount
	cfg    handle.Config
	client *Client
	mask   string
	logger *zap.Logger

	ports    *eventbus.Ports
	keys *eventbus.Channel[string]
	// outcomes carries dialogClosed wire values ("ok" / "cancel")
	outcomes *eventbus.Channel[string]

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	state state
}

type state struct {
	servers []string
	server  int
	page    KeysPage
	cursor  int
	// pending is the key awaiting delete confirmation
	pending string
	loading bool
	err     string
}

var _ handle.Handle = (*Browser)(nil)

func New(mount handle.Mount, cfg handle.Config, opts Options) (*Browser, error) {
	if mount == nil {
		return nil, fmt.Errorf("mount is required")
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("apiUrl is required")
	}
	if opts.Mask == "" {
		opts.Mask = defaultMask
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Browser{
		mount:    mount,
		cfg:      cfg,
		client:   NewClient(cfg.APIURL, opts.Timeout),
		mask:     opts.Mask,
		logger:   opts.Logger,
		ports:    eventbus.NewPorts(),
		keys:     eventbus.NewChannel[string]("keys"),
		outcomes: eventbus.NewChannel[string](eventbus.PortDialogClosed),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	mount.OnKey(func(key string) {
		_ = b.keys.Send(key)
	})
	go b.run()
	return b, nil
}

func (b *Browser) Ports() *eventbus.Ports {
	return b.ports
}

func (b *Browser) DialogClosed(outcome effect.DialogOutcome) {
	wire, err := outcome.MarshalText()
	if err != nil {
		b.logger.Error("failed to encode dialog outcome", zap.Error(err))
		return
	}
	if err := b.outcomes.Send(string(wire)); err != nil {
		b.logger.Debug("dialog outcome after close", zap.Stringer("outcome", outcome))
	}
}

// Close stops the browser and closes its ports
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		b.cancel()
		<-b.done
		b.keys.Close()
		b.outcomes.Close()
		b.ports.Close()
	})
	return nil
}

func (b *Browser) run() {
	defer close(b.done)

	b.reloadServers()
	for {
		select {
		case <-b.ctx.Done():
			return
		case key, ok := <-b.keys.Out():
			if !ok {
				return
			}
			b.handleKey(key)
		case wire, ok := <-b.outcomes.Out():
			if !ok {
				return
			}
			b.handleOutcome(decodeOutcome(wire, b.logger))
		}
	}
}

func (b *Browser) handleKey(key string) {
	s := &b.state
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.page.Keys)-1 {
			s.cursor++
		}
	case "tab":
		if len(s.servers) > 1 {
			s.server = (s.server + 1) % len(s.servers)
			b.loadPage(1)
			return
		}
	case "right", "n":
		if s.page.Page < s.page.PagesCount {
			b.loadPage(s.page.Page + 1)
			return
		}
	case "left", "p":
		if s.page.Page > 1 {
			b.loadPage(s.page.Page - 1)
			return
		}
	case "r":
		b.reloadServers()
		return
	case "i":
		b.emit(effect.Toast{Kind: effect.ToastInfo, Text: fmt.Sprintf("App version %s at %s", b.cfg.AppVersion, b.cfg.APIURL)})
	case "d", "delete":
		b.requestDelete()
	default:
		return
	}
	b.render()
}

func (b *Browser) requestDelete() {
	s := &b.state
	if s.pending != "" {
		b.emit(effect.Toast{Kind: effect.ToastWarning, Text: "Confirm or cancel the pending delete first"})
		return
	}
	key, ok := s.selected()
	if !ok {
		b.emit(effect.Toast{Kind: effect.ToastWarning, Text: "No key selected"})
		return
	}

	s.pending = key
	b.emit(effect.ConfirmationRequested{PromptHTML: deletePrompt(key, s.servers[s.server])})
}

func (b *Browser) handleOutcome(outcome effect.DialogOutcome) {
	s := &b.state
	key := s.pending
	s.pending = ""
	if key == "" {
		b.logger.Warn("unexpected dialog outcome", zap.Stringer("outcome", outcome))
		return
	}

	if outcome != effect.Confirmed {
		b.emit(effect.Toast{Kind: effect.ToastInfo, Text: fmt.Sprintf("Kept %s", key)})
		return
	}

	server := s.servers[s.server]
	if err := b.client.DeleteKey(b.ctx, server, key); err != nil {
		b.logger.Error("delete failed", zap.String("server", server), zap.String("key", key), zap.Error(err))
		b.emit(effect.Toast{Kind: effect.ToastError, Text: err.Error()})
		return
	}

	b.emit(effect.Toast{Kind: effect.ToastSuccess, Text: fmt.Sprintf("Deleted %s", key)})
	page := s.page.Page
	if len(s.page.Keys) == 1 && page > 1 {
		page--
	}
	b.loadPage(page)
}

// decodeOutcome reads a dialogClosed wire value. Anything unknown is
// treated as a cancel so a garbled answer never deletes a key.
func decodeOutcome(wire string, logger *zap.Logger) effect.DialogOutcome {
	var outcome effect.DialogOutcome
	if err := outcome.UnmarshalText([]byte(wire)); err != nil {
		logger.Warn("unreadable dialog outcome", zap.String("wire", wire), zap.Error(err))
		return effect.Cancelled
	}
	return outcome
}

func (b *Browser) reloadServers() {
	s := &b.state
	s.loading = true
	b.render()

	servers, err := b.client.Servers(b.ctx)
	if err != nil {
		b.fail(err)
		return
	}

	current := ""
	if s.server < len(s.servers) {
		current = s.servers[s.server]
	}
	s.servers = servers
	s.server = 0
	for i, name := range servers {
		if name == current {
			s.server = i
		}
	}

	if len(servers) == 0 {
		s.page = KeysPage{}
		s.loading = false
		b.emit(effect.Toast{Kind: effect.ToastWarning, Text: "No servers configured"})
		b.render()
		return
	}
	b.loadPage(1)
}

func (b *Browser) loadPage(page int) {
	s := &b.state
	if len(s.servers) == 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	s.loading = true
	b.render()

	result, err := b.client.Keys(b.ctx, s.servers[s.server], b.mask, page)
	if err != nil {
		b.fail(err)
		return
	}

	s.page = result
	s.loading = false
	s.err = ""
	if s.cursor >= len(result.Keys) {
		s.cursor = max(len(result.Keys)-1, 0)
	}
	b.render()
}

func (b *Browser) fail(err error) {
	if b.ctx.Err() != nil {
		return
	}
	b.logger.Error("request failed", zap.Error(err))
	b.state.loading = false
	b.state.err = err.Error()
	b.emit(effect.Toast{Kind: effect.ToastError, Text: err.Error()})
	b.render()
}

func (b *Browser) emit(req effect.Request) {
	if err := b.ports.Emit(req); err != nil {
		b.logger.Debug("effect dropped", zap.Error(err))
	}
}

func (b *Browser) render() {
	width, height := b.mount.Size()
	b.mount.Render(renderView(b.state, b.cfg, width, height))
}

func (s state) selected() (string, bool) {
	if len(s.servers) == 0 || s.cursor >= len(s.page.Keys) {
		return "", false
	}
	return s.page.Keys[s.cursor], true
}

// deletePrompt builds the dialog markup. Names are escaped since keys may
// contain anything.
func deletePrompt(key, server string) string {
	return fmt.Sprintf("Delete key <b>%s</b> from <i>%s</i>?<br>This cannot be undone.",
		html.EscapeString(key), html.EscapeString(server))
}
