package hostui

import (
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/internal/bridge"
	"github.com/Rorical/RoriHost/internal/dispatcher"
	"github.com/Rorical/RoriHost/internal/utils"
	"github.com/Rorical/RoriHost/ui/components"
)

// Messages the modal sends to itself through the UI loop
type (
	ModalBodyMsg struct{ HTML string }
	ModalOpenMsg struct{}
	ModalHideMsg struct{}
)

type listenerSet struct {
	fns map[int]func()
}

// Modal is the single confirmation dialog of the host. Its methods from
// bridge.Dialog may be called from any goroutine; Update and View belong to
// the UI loop.
type Modal struct {
	sender dispatcher.Sender

	mu      sync.Mutex
	nextID  int
	confirm listenerSet
	cancel  listenerSet
	hidden  listenerSet

	open           bool
	body           string
	confirmFocused bool
	help           help.Model
}

func NewModal(sender dispatcher.Sender) *Modal {
	return &Modal{
		sender:  sender,
		confirm: listenerSet{fns: map[int]func(){}},
		cancel:  listenerSet{fns: map[int]func(){}},
		hidden:  listenerSet{fns: map[int]func(){}},
		help:    help.New(),
	}
}

var _ bridge.Dialog = (*Modal)(nil)

func (m *Modal) SetBody(html string) { m.sender.Send(ModalBodyMsg{HTML: html}) }
func (m *Modal) Open()               { m.sender.Send(ModalOpenMsg{}) }
func (m *Modal) Hide()               { m.sender.Send(ModalHideMsg{}) }

func (m *Modal) OnConfirm(fn func()) bridge.Unsubscribe { return m.subscribe(&m.confirm, fn) }
func (m *Modal) OnCancel(fn func()) bridge.Unsubscribe  { return m.subscribe(&m.cancel, fn) }
func (m *Modal) OnHidden(fn func()) bridge.Unsubscribe  { return m.subscribe(&m.hidden, fn) }

func (m *Modal) subscribe(set *listenerSet, fn func()) bridge.Unsubscribe {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	set.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(set.fns, id)
		})
	}
}

// Listeners reports how many callbacks are registered
func (m *Modal) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirm.fns) + len(m.cancel.fns) + len(m.hidden.fns)
}

func (m *Modal) fire(set *listenerSet) {
	m.mu.Lock()
	fns := make([]func(), 0, len(set.fns))
	for _, fn := range set.fns {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// IsOpen reports whether the dialog is on screen
func (m *Modal) IsOpen() bool {
	return m.open
}

// Update handles modal messages and, while open, every key press.
// It reports whether msg was consumed.
func (m *Modal) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ModalBodyMsg:
		m.body = utils.RenderMarkup(msg.HTML)
		return true
	case ModalOpenMsg:
		m.open = true
		m.confirmFocused = true
		return true
	case ModalHideMsg:
		m.close()
		return true
	case tea.KeyMsg:
		if !m.open {
			return false
		}
		m.handleKey(msg)
		return true
	}
	return false
}

func (m *Modal) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, ModalKeys.Confirm):
		m.pressConfirm()
	case key.Matches(msg, ModalKeys.Cancel):
		m.pressCancel()
	case key.Matches(msg, ModalKeys.Accept):
		if m.confirmFocused {
			m.pressConfirm()
		} else {
			m.pressCancel()
		}
	case key.Matches(msg, ModalKeys.Switch):
		m.confirmFocused = !m.confirmFocused
	case key.Matches(msg, ModalKeys.Dismiss):
		m.close()
	}
}

// pressConfirm leaves closing to whoever listens for the confirmation
func (m *Modal) pressConfirm() {
	m.fire(&m.confirm)
}

// pressCancel behaves like a dismiss button: it reports the cancel and
// closes the dialog.
func (m *Modal) pressCancel() {
	m.fire(&m.cancel)
	m.close()
}

func (m *Modal) close() {
	if !m.open {
		return
	}
	m.open = false
	m.fire(&m.hidden)
}

func (m *Modal) View(width, height int) string {
	if !m.open {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.body, "", m.help.ShortHelpView(ModalKeys.ShortHelp()))
	return components.RenderModal(body, m.confirmFocused, width, height)
}
