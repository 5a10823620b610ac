package models

import (
	"time"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/handle"
)

// Toast is one notification currently on screen
type Toast struct {
	Kind    effect.ToastKind
	Text    string
	Expires time.Time
}

// AppModel represents the host UI state - only local UI concerns
type AppModel struct {
	Status      string        // Status bar text
	Booting     bool          // Config still being resolved
	LoadingDots int           // Animation counter for loading dots
	Width       int           // Terminal width
	Height      int           // Terminal height
	Config      handle.Config // Resolved application config
	Toasts      []Toast       // Toasts not yet expired, oldest first
	MainView    string        // Last view rendered by the application
	Err         error         // Fatal startup error
}
