package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/effect"
)

// machineHarness drives a dialogMachine synchronously: host callbacks are
// queued and only processed on drain, like the bridge loop would.
type machineHarness struct {
	m        *dialogMachine
	dialog   *fakeDialog
	queued   []dialogEvent
	outcomes []effect.DialogOutcome
}

func newMachineHarness(policy OverlapPolicy, autoHide bool) *machineHarness {
	h := &machineHarness{dialog: newFakeDialog(autoHide)}
	h.m = &dialogMachine{
		dialog:  h.dialog,
		policy:  policy,
		post:    func(ev dialogEvent) { h.queued = append(h.queued, ev) },
		deliver: func(o effect.DialogOutcome) { h.outcomes = append(h.outcomes, o) },
		logger:  zap.NewNop(),
	}
	return h
}

func (h *machineHarness) drain() {
	for len(h.queued) > 0 {
		ev := h.queued[0]
		h.queued = h.queued[1:]
		h.m.handle(ev)
	}
}

func (h *machineHarness) lastBody() string {
	return h.dialog.bodies[len(h.dialog.bodies)-1]
}

func TestMachineQueueWhileOpen(t *testing.T) {
	h := newMachineHarness(PolicyQueue, true)

	h.m.request("first")
	h.m.request("second")
	assert.Equal(t, stateOpen, h.m.state)
	assert.Len(t, h.m.pending, 1)
	assert.Equal(t, "first", h.lastBody())

	h.dialog.clickConfirm()
	h.drain()

	require.Equal(t, []effect.DialogOutcome{effect.Confirmed}, h.outcomes)
	assert.Equal(t, stateOpen, h.m.state)
	assert.Equal(t, "second", h.lastBody())

	h.dialog.dismiss()
	h.drain()

	assert.Equal(t, []effect.DialogOutcome{effect.Confirmed, effect.Cancelled}, h.outcomes)
	assert.Equal(t, stateIdle, h.m.state)
	assert.False(t, h.m.busy())
}

func TestMachineQueueWhileClosing(t *testing.T) {
	h := newMachineHarness(PolicyQueue, false)

	h.m.request("first")
	h.dialog.clickConfirm()
	h.drain()
	require.Equal(t, stateClosing, h.m.state)
	assert.Empty(t, h.outcomes)

	h.m.request("second")
	assert.Len(t, h.m.pending, 1)

	h.dialog.dismiss()
	h.drain()

	assert.Equal(t, []effect.DialogOutcome{effect.Confirmed}, h.outcomes)
	assert.Equal(t, stateOpen, h.m.state)
	assert.Equal(t, "second", h.lastBody())
	assert.Equal(t, 2, h.dialog.opens)
}

func TestMachineRejectWhileOpen(t *testing.T) {
	h := newMachineHarness(PolicyReject, true)

	h.m.request("first")
	h.m.request("second")
	h.m.request("third")

	assert.Empty(t, h.outcomes)
	assert.Equal(t, "first", h.lastBody())
	assert.Equal(t, 1, h.dialog.opens)
	assert.True(t, h.m.busy())

	h.dialog.clickConfirm()
	h.drain()
	assert.Equal(t, []effect.DialogOutcome{effect.Confirmed, effect.Cancelled, effect.Cancelled}, h.outcomes)
	assert.Equal(t, stateIdle, h.m.state)
	assert.False(t, h.m.busy())
	assert.Equal(t, 1, h.dialog.opens)
}

func TestMachineRejectWhileClosing(t *testing.T) {
	h := newMachineHarness(PolicyReject, false)

	h.m.request("first")
	h.dialog.clickConfirm()
	h.drain()

	h.m.request("second")
	assert.Empty(t, h.outcomes)

	h.dialog.dismiss()
	h.drain()
	assert.Equal(t, []effect.DialogOutcome{effect.Confirmed, effect.Cancelled}, h.outcomes)
	assert.Equal(t, stateIdle, h.m.state)
	assert.Equal(t, 1, h.dialog.opens)
}

func TestMachineDecisionsAreExclusive(t *testing.T) {
	h := newMachineHarness(PolicyQueue, false)

	h.m.request("sure?")
	h.dialog.clickCancel()
	h.dialog.clickConfirm()
	h.drain()

	assert.Equal(t, stateOpen, h.m.state)
	assert.Zero(t, h.dialog.hides)

	h.dialog.dismiss()
	h.drain()
	assert.Equal(t, []effect.DialogOutcome{effect.Cancelled}, h.outcomes)
}

func TestMachineIgnoresStaleEvents(t *testing.T) {
	h := newMachineHarness(PolicyQueue, true)

	h.m.request("first")
	firstSeq := h.m.current.seq
	h.dialog.clickConfirm()
	h.drain()

	h.m.request("second")
	h.m.handle(dialogEvent{kind: eventHidden, seq: firstSeq})
	h.m.handle(dialogEvent{kind: eventConfirm, seq: firstSeq})

	assert.Equal(t, []effect.DialogOutcome{effect.Confirmed}, h.outcomes)
	assert.Equal(t, stateOpen, h.m.state)
	assert.Equal(t, 1, h.dialog.hides)
}

func TestMachineDoesNotAccumulateListeners(t *testing.T) {
	h := newMachineHarness(PolicyQueue, true)

	for i := 0; i < 3; i++ {
		h.m.request("again?")
		assert.Equal(t, 3, h.dialog.listeners())

		h.dialog.clickConfirm()
		h.drain()
		assert.Zero(t, h.dialog.listeners())
		assert.Len(t, h.outcomes, i+1)
	}

	// a close event with nothing open changes nothing
	h.dialog.dismiss()
	h.drain()
	assert.Len(t, h.outcomes, 3)
}
