// Package handle defines the contract between the host and an embedded
// application: how it is created, what it emits and what it accepts back.
package handle

import (
	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/eventbus"
)

// MainMountID is the id of the element applications render into
const MainMountID = "main"

// UnknownVersion is reported when the version probe could not tell
const UnknownVersion = "UNKNOWN"

// Config is handed to the application once at creation
type Config struct {
	APIURL     string `json:"apiUrl"`
	AppVersion string `json:"appVersion,omitempty"`
}

// Mount is the host region an application renders into
type Mount interface {
	ID() string
	// Render replaces the region's content
	Render(view string)
	// OnKey registers the handler for key presses aimed at the region
	OnKey(func(key string))
	// Size reports the region's current width and height in cells
	Size() (int, int)
}

// Sink accepts replies from the host
type Sink interface {
	// DialogClosed receives exactly one outcome per confirmation request
	DialogClosed(outcome effect.DialogOutcome)
}

// Handle is a running application instance
type Handle interface {
	Sink
	Ports() *eventbus.Ports
}

// Factory creates an application inside mount
type Factory func(mount Mount, cfg Config) (Handle, error)
