package effect

import (
	"errors"
	"fmt"
)

// ToastKind selects the toast style the host should use
type ToastKind int

const (
	ToastError ToastKind = iota
	ToastInfo
	ToastWarning
	ToastSuccess
)

func (k ToastKind) String() string {
	switch k {
	case ToastError:
		return "error"
	case ToastInfo:
		return "info"
	case ToastWarning:
		return "warning"
	case ToastSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Request is an outbound effect emitted by the embedded application.
// Requests carry no identity beyond their payload.
type Request interface {
	EffectRequest()
}

// Toast asks the host to show a notification of the given kind
type Toast struct {
	Kind ToastKind
	Text string
}

func (Toast) EffectRequest() {}

// ConfirmationRequested asks the host to open the confirmation dialog.
// PromptHTML is markup supplied by the application and is passed to the
// host unchanged.
type ConfirmationRequested struct {
	PromptHTML string
}

func (ConfirmationRequested) EffectRequest() {}

// DialogOutcome is the user's answer to one confirmation dialog
type DialogOutcome int

const (
	Cancelled DialogOutcome = iota
	Confirmed
)

// Wire values of the dialogClosed port.
const (
	WireConfirmed = "ok"
	WireCancelled = "cancel"
)

var ErrUnknownOutcome = errors.New("unknown dialog outcome")

// String returns the wire value
func (o DialogOutcome) String() string {
	if o == Confirmed {
		return WireConfirmed
	}
	return WireCancelled
}

// ParseOutcome maps a dialogClosed wire value back to an outcome
func ParseOutcome(s string) (DialogOutcome, error) {
	switch s {
	case WireConfirmed:
		return Confirmed, nil
	case WireCancelled:
		return Cancelled, nil
	default:
		return Cancelled, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

func (o DialogOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *DialogOutcome) UnmarshalText(b []byte) error {
	parsed, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
