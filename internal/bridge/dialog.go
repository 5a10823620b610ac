package bridge

import (
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/effect"
)

type dialogState int

const (
	stateIdle dialogState = iota
	stateOpen
	stateClosing
)

func (s dialogState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateOpen:
		return "open"
	case stateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

type dialogEventKind int

const (
	eventConfirm dialogEventKind = iota
	eventCancel
	eventHidden
)

func (k dialogEventKind) String() string {
	switch k {
	case eventConfirm:
		return "confirm"
	case eventCancel:
		return "cancel"
	default:
		return "hidden"
	}
}

// dialogEvent is a host callback tagged with the lifecycle it belongs to
type dialogEvent struct {
	kind dialogEventKind
	seq  uint64
}

// lifecycle is the state of one open/close cycle of the dialog
type lifecycle struct {
	seq         uint64
	outcome     effect.DialogOutcome
	decided     bool
	unsubscribe []Unsubscribe
}

// dialogMachine owns the host dialog. It is not safe for concurrent use;
// the bridge loop is its only caller.
type dialogMachine struct {
	dialog  Dialog
	policy  OverlapPolicy
	post    func(dialogEvent)
	deliver func(effect.DialogOutcome)
	logger  *zap.Logger

	state   dialogState
	current *lifecycle
	pending []string
	// rejected counts refused requests whose Cancelled is held until the
	// current lifecycle has delivered, so outcomes keep request order
	rejected int
	nextSeq  uint64
}

func (m *dialogMachine) busy() bool {
	return m.state != stateIdle || len(m.pending) > 0 || m.rejected > 0
}

func (m *dialogMachine) request(html string) {
	if m.state == stateIdle {
		m.open(html)
		return
	}

	switch m.policy {
	case PolicyReject:
		m.rejected++
		m.logger.Warn("confirmation rejected, dialog already in use",
			zap.Stringer("state", m.state), zap.Int("rejected", m.rejected))
	default:
		m.pending = append(m.pending, html)
		m.logger.Debug("confirmation queued", zap.Int("pending", len(m.pending)))
	}
}

func (m *dialogMachine) open(html string) {
	m.nextSeq++
	lc := &lifecycle{seq: m.nextSeq, outcome: effect.Cancelled}
	m.current = lc
	m.state = stateOpen

	m.dialog.SetBody(html)
	lc.unsubscribe = []Unsubscribe{
		m.dialog.OnConfirm(m.listener(eventConfirm, lc.seq)),
		m.dialog.OnCancel(m.listener(eventCancel, lc.seq)),
		m.dialog.OnHidden(m.listener(eventHidden, lc.seq)),
	}
	m.dialog.Open()

	m.logger.Debug("confirmation dialog opened", zap.Uint64("seq", lc.seq))
}

func (m *dialogMachine) listener(kind dialogEventKind, seq uint64) func() {
	return func() {
		m.post(dialogEvent{kind: kind, seq: seq})
	}
}

func (m *dialogMachine) handle(ev dialogEvent) {
	lc := m.current
	if lc == nil || ev.seq != lc.seq {
		m.logger.Debug("stale dialog event ignored",
			zap.Stringer("event", ev.kind), zap.Uint64("seq", ev.seq))
		return
	}

	switch ev.kind {
	case eventConfirm:
		if m.state != stateOpen || lc.decided {
			return
		}
		lc.decided = true
		lc.outcome = effect.Confirmed
		m.state = stateClosing
		m.dialog.Hide()
	case eventCancel:
		if m.state != stateOpen || lc.decided {
			return
		}
		lc.decided = true
		lc.outcome = effect.Cancelled
	case eventHidden:
		m.finish(lc)
	}
}

func (m *dialogMachine) finish(lc *lifecycle) {
	for _, unsubscribe := range lc.unsubscribe {
		unsubscribe()
	}
	lc.unsubscribe = nil
	m.current = nil
	m.state = stateIdle

	m.logger.Debug("confirmation dialog closed",
		zap.Uint64("seq", lc.seq), zap.Stringer("outcome", lc.outcome))
	m.deliver(lc.outcome)
	for ; m.rejected > 0; m.rejected-- {
		m.deliver(effect.Cancelled)
	}

	if len(m.pending) > 0 {
		next := m.pending[0]
		m.pending[0] = ""
		m.pending = m.pending[1:]
		m.open(next)
	}
}
