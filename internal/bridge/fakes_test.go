package bridge

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/eventbus"
)

type fakeDialog struct {
	mu       sync.Mutex
	autoHide bool
	bodies   []string
	opens    int
	hides    int
	nextID   int
	confirm  map[int]func()
	cancel   map[int]func()
	hidden   map[int]func()
	opened   chan string
}

func newFakeDialog(autoHide bool) *fakeDialog {
	return &fakeDialog{
		autoHide: autoHide,
		confirm:  map[int]func(){},
		cancel:   map[int]func(){},
		hidden:   map[int]func(){},
		opened:   make(chan string, 32),
	}
}

func (d *fakeDialog) SetBody(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bodies = append(d.bodies, html)
}

func (d *fakeDialog) Open() {
	d.mu.Lock()
	d.opens++
	body := d.bodies[len(d.bodies)-1]
	d.mu.Unlock()
	d.opened <- body
}

func (d *fakeDialog) Hide() {
	d.mu.Lock()
	d.hides++
	auto := d.autoHide
	d.mu.Unlock()
	if auto {
		d.fire(d.hidden)
	}
}

func (d *fakeDialog) subscribe(set map[int]func(), fn func()) Unsubscribe {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	set[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(set, id)
	}
}

func (d *fakeDialog) OnConfirm(fn func()) Unsubscribe { return d.subscribe(d.confirm, fn) }
func (d *fakeDialog) OnCancel(fn func()) Unsubscribe  { return d.subscribe(d.cancel, fn) }
func (d *fakeDialog) OnHidden(fn func()) Unsubscribe  { return d.subscribe(d.hidden, fn) }

func (d *fakeDialog) fire(set map[int]func()) {
	d.mu.Lock()
	fns := make([]func(), 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (d *fakeDialog) clickConfirm() { d.fire(d.confirm) }
func (d *fakeDialog) clickCancel()  { d.fire(d.cancel) }
func (d *fakeDialog) dismiss()      { d.fire(d.hidden) }

func (d *fakeDialog) listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.confirm) + len(d.cancel) + len(d.hidden)
}

func (d *fakeDialog) counts() (opens, hides int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens, d.hides
}

func (d *fakeDialog) waitOpened(t *testing.T) string {
	t.Helper()
	select {
	case body := <-d.opened:
		return body
	case <-time.After(2 * time.Second):
		t.Fatal("dialog was not opened")
		return ""
	}
}

type toastCall struct {
	kind effect.ToastKind
	msg  string
}

type fakeHost struct {
	dialog *fakeDialog
	toasts chan toastCall
}

func newFakeHost(autoHide bool) *fakeHost {
	return &fakeHost{dialog: newFakeDialog(autoHide), toasts: make(chan toastCall, 256)}
}

func (h *fakeHost) ShowToast(kind effect.ToastKind, message string) {
	h.toasts <- toastCall{kind: kind, msg: message}
}

func (h *fakeHost) Dialog() Dialog { return h.dialog }

type fakeApp struct {
	ports    *eventbus.Ports
	outcomes chan effect.DialogOutcome
}

func newFakeApp() *fakeApp {
	return &fakeApp{ports: eventbus.NewPorts(), outcomes: make(chan effect.DialogOutcome, 32)}
}

func (a *fakeApp) Ports() *eventbus.Ports { return a.ports }

func (a *fakeApp) DialogClosed(outcome effect.DialogOutcome) { a.outcomes <- outcome }

func (a *fakeApp) waitOutcome(t *testing.T) effect.DialogOutcome {
	t.Helper()
	select {
	case o := <-a.outcomes:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("no dialogClosed delivered")
		return effect.Cancelled
	}
}

func (a *fakeApp) requireNoOutcome(t *testing.T) {
	t.Helper()
	select {
	case o := <-a.outcomes:
		require.Failf(t, "unexpected dialogClosed", "got %s", o)
	case <-time.After(50 * time.Millisecond):
	}
}
