// Package bridge connects an embedded application's effect ports to the
// host UI and carries confirmation outcomes back to the application.
//
// All dialog state lives on the goroutine running Bridge.Run. Host
// callbacks are posted into that loop, so the host never waits on the
// bridge and the bridge never shares state with the host.
package bridge

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/eventbus"
	"github.com/Rorical/RoriHost/internal/handle"
)

var ErrAlreadyRunning = errors.New("bridge is already running")

// Option configures a Bridge
type Option func(*Bridge)

func WithPolicy(policy OverlapPolicy) Option {
	return func(b *Bridge) {
		b.policy = policy
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// Bridge routes effect requests from one application to one host
type Bridge struct {
	ports   *eventbus.Ports
	sink    handle.Sink
	host    HostUI
	policy  OverlapPolicy
	logger  *zap.Logger
	events  *eventbus.Channel[dialogEvent]
	machine *dialogMachine
	running atomic.Bool
}

func New(app handle.Handle, host HostUI, opts ...Option) *Bridge {
	b := &Bridge{
		ports:  app.Ports(),
		sink:   app,
		host:   host,
		policy: PolicyQueue,
		logger: zap.NewNop(),
		events: eventbus.NewChannel[dialogEvent]("dialogEvents"),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.machine = &dialogMachine{
		dialog: host.Dialog(),
		policy: b.policy,
		post: func(ev dialogEvent) {
			// the loop may already be gone; late clicks are dropped
			_ = b.events.Send(ev)
		},
		deliver: b.sink.DialogClosed,
		logger:  b.logger.Named("dialog"),
	}
	return b
}

func (b *Bridge) Policy() OverlapPolicy {
	return b.policy
}

// Run processes effect requests until ctx is done, or until every port is
// closed and no confirmation is outstanding.
func (b *Bridge) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer b.events.Close()

	toastError := b.ports.ToastError.Out()
	toastInfo := b.ports.ToastInfo.Out()
	toastWarning := b.ports.ToastWarning.Out()
	toastSuccess := b.ports.ToastSuccess.Out()
	confirmations := b.ports.ShowConfirmationDialog.Out()
	events := b.events.Out()

	b.logger.Info("bridge started", zap.String("policy", string(b.policy)))

	for {
		portsOpen := toastError != nil || toastInfo != nil || toastWarning != nil ||
			toastSuccess != nil || confirmations != nil
		if !portsOpen && !b.machine.busy() {
			b.logger.Info("bridge stopped, application ports closed")
			return nil
		}

		select {
		case <-ctx.Done():
			b.logger.Info("bridge stopped", zap.Error(ctx.Err()))
			return nil
		case msg, ok := <-toastError:
			if !ok {
				toastError = nil
				continue
			}
			b.toast(effect.ToastError, msg)
		case msg, ok := <-toastInfo:
			if !ok {
				toastInfo = nil
				continue
			}
			b.toast(effect.ToastInfo, msg)
		case msg, ok := <-toastWarning:
			if !ok {
				toastWarning = nil
				continue
			}
			b.toast(effect.ToastWarning, msg)
		case msg, ok := <-toastSuccess:
			if !ok {
				toastSuccess = nil
				continue
			}
			b.toast(effect.ToastSuccess, msg)
		case html, ok := <-confirmations:
			if !ok {
				confirmations = nil
				continue
			}
			b.machine.request(html)
		case ev := <-events:
			b.machine.handle(ev)
		}
	}
}

func (b *Bridge) toast(kind effect.ToastKind, msg string) {
	b.logger.Debug("toast", zap.Stringer("kind", kind))
	b.host.ShowToast(kind, msg)
}
