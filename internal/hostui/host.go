// Package hostui is the terminal implementation of the host widgets the
// bridge drives: toasts, one confirmation modal and the mount region.
package hostui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriHost/internal/bridge"
	"github.com/Rorical/RoriHost/internal/dispatcher"
	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/handle"
)

type Options struct {
	ToastTTL time.Duration
	MaxToast int
}

// Host owns the widgets. ShowToast and Dialog may be used from any
// goroutine; Update must run on the UI loop.
type Host struct {
	sender dispatcher.Sender
	modal  *Modal
	region *Region
	toasts *Toasts
}

func New(sender dispatcher.Sender, opts Options) *Host {
	return &Host{
		sender: sender,
		modal:  NewModal(sender),
		region: NewRegion(handle.MainMountID, sender),
		toasts: NewToasts(opts.ToastTTL, opts.MaxToast),
	}
}

var _ bridge.HostUI = (*Host)(nil)

func (h *Host) ShowToast(kind effect.ToastKind, message string) {
	h.sender.Send(ToastMsg{Kind: kind, Text: message})
}

func (h *Host) Dialog() bridge.Dialog {
	return h.modal
}

func (h *Host) Modal() *Modal   { return h.modal }
func (h *Host) Region() *Region { return h.region }
func (h *Host) Toasts() *Toasts { return h.toasts }

// Update routes widget messages. Keys go to the modal while it is open
// and to the mounted application otherwise.
func (h *Host) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ToastMsg:
		h.toasts.Add(msg.Kind, msg.Text)
		return true
	case RegionUpdatedMsg:
		return true
	case tea.KeyMsg:
		if h.modal.Update(msg) {
			return true
		}
		return h.region.HandleKey(msg.String())
	}
	return h.modal.Update(msg)
}
