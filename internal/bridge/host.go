package bridge

import "github.com/Rorical/RoriHost/internal/effect"

// Unsubscribe removes a listener registered on the dialog
type Unsubscribe func()

// HostUI is the widget layer the bridge drives. Implementations must be
// safe to call from the bridge goroutine. Failures inside these calls are
// not reported back; a panicking adapter brings the bridge down.
type HostUI interface {
	ShowToast(kind effect.ToastKind, message string)
	Dialog() Dialog
}

// Dialog is the host's single modal confirmation dialog.
type Dialog interface {
	// SetBody replaces the dialog content with markup
	SetBody(html string)
	Open()
	// Hide closes the dialog; hidden listeners fire once it is fully closed
	Hide()

	// OnConfirm fires when the user presses the confirm action
	OnConfirm(fn func()) Unsubscribe
	// OnCancel fires when the user presses the cancel action
	OnCancel(fn func()) Unsubscribe
	// OnHidden fires after the dialog is fully closed, whatever closed it
	OnHidden(fn func()) Unsubscribe
}
