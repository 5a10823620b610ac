package eventbus

import (
	"errors"
	"sync"
	"time"
)

var ErrChannelClosed = errors.New("channel is closed")

// Channel is an ordered, unbounded stream of values. Send never waits for
// the consumer; values are buffered until read from Out.
type Channel[T any] struct {
	name string

	mu     sync.Mutex
	closed bool
	in     chan T
	out    chan T
	done   chan struct{}
}

func NewChannel[T any](name string) *Channel[T] {
	c := &Channel[T]{
		name: name,
		in:   make(chan T),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go c.pump()
	return c
}

func (c *Channel[T]) Name() string {
	return c.name
}

// Send appends v to the stream
func (c *Channel[T]) Send(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return EventBusError{Operation: "Send " + c.name, Err: ErrChannelClosed, Timestamp: time.Now()}
	}
	c.in <- v
	return nil
}

// Out delivers values in the order they were sent. It is closed after
// Close once every buffered value has been read.
func (c *Channel[T]) Out() <-chan T {
	return c.out
}

// Close stops accepting values. Buffered values are still delivered.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.in)
}

// Done is closed when the pump has delivered everything and exited
func (c *Channel[T]) Done() <-chan struct{} {
	return c.done
}

func (c *Channel[T]) pump() {
	defer close(c.done)
	defer close(c.out)

	var queue []T
	in := c.in
	for in != nil || len(queue) > 0 {
		var out chan T
		var next T
		if len(queue) > 0 {
			out = c.out
			next = queue[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, v)
		case out <- next:
			var zero T
			queue[0] = zero
			queue = queue[1:]
		}
	}
}
