package eventbus

import (
	"time"

	"github.com/Rorical/RoriHost/internal/effect"
)

// Port names as seen by the embedded application.
const (
	PortToastError             = "toastError"
	PortToastInfo              = "toastInfo"
	PortToastWarning           = "toastWarning"
	PortToastSuccess           = "toastSuccess"
	PortShowConfirmationDialog = "showConfirmationDialog"
	PortDialogClosed           = "dialogClosed"
)

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// Ports holds the outbound channels of one application instance. Each
// effect kind has its own channel; they are never multiplexed.
type Ports struct {
	ToastError             *Channel[string]
	ToastInfo              *Channel[string]
	ToastWarning           *Channel[string]
	ToastSuccess           *Channel[string]
	ShowConfirmationDialog *Channel[string]
}

func NewPorts() *Ports {
	return &Ports{
		ToastError:             NewChannel[string](PortToastError),
		ToastInfo:              NewChannel[string](PortToastInfo),
		ToastWarning:           NewChannel[string](PortToastWarning),
		ToastSuccess:           NewChannel[string](PortToastSuccess),
		ShowConfirmationDialog: NewChannel[string](PortShowConfirmationDialog),
	}
}

// Toast returns the channel for the given toast kind
func (p *Ports) Toast(kind effect.ToastKind) *Channel[string] {
	switch kind {
	case effect.ToastError:
		return p.ToastError
	case effect.ToastInfo:
		return p.ToastInfo
	case effect.ToastWarning:
		return p.ToastWarning
	case effect.ToastSuccess:
		return p.ToastSuccess
	default:
		return nil
	}
}

// Emit routes a request to its channel
func (p *Ports) Emit(req effect.Request) error {
	switch r := req.(type) {
	case effect.Toast:
		ch := p.Toast(r.Kind)
		if ch == nil {
			return nil
		}
		return ch.Send(r.Text)
	case effect.ConfirmationRequested:
		return p.ShowConfirmationDialog.Send(r.PromptHTML)
	}
	return nil
}

func (p *Ports) Close() {
	p.ToastError.Close()
	p.ToastInfo.Close()
	p.ToastWarning.Close()
	p.ToastSuccess.Close()
	p.ShowConfirmationDialog.Close()
}
