package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriHost/internal/eventbus"
)

// Sender delivers messages into the UI event loop
type Sender interface {
	Send(msg tea.Msg)
}

// EventDispatcher forwards messages to the UI program without ever
// blocking the caller. Messages keep the order they were sent in.
type EventDispatcher struct {
	queue  *eventbus.Channel[tea.Msg]
	ctx    context.Context
	cancel context.CancelFunc
}

func NewEventDispatcher() *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		queue:  eventbus.NewChannel[tea.Msg]("ui"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Send queues msg. It is safe to call from inside the program's Update.
func (ed *EventDispatcher) Send(msg tea.Msg) {
	// after Stop the program is gone; nothing left to deliver to
	_ = ed.queue.Send(msg)
}

// Start forwards queued messages to program until Stop
func (ed *EventDispatcher) Start(program Sender) {
	go func() {
		for {
			select {
			case <-ed.ctx.Done():
				return
			case msg, ok := <-ed.queue.Out():
				if !ok {
					return
				}
				program.Send(msg)
			}
		}
	}()
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
	ed.queue.Close()
}
