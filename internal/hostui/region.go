package hostui

import (
	"sync"

	"github.com/Rorical/RoriHost/internal/dispatcher"
	"github.com/Rorical/RoriHost/internal/handle"
)

// RegionUpdatedMsg asks the UI loop to redraw after the application rendered
type RegionUpdatedMsg struct{ ID string }

// Region is the part of the screen an application is mounted into
type Region struct {
	id     string
	sender dispatcher.Sender

	mu     sync.Mutex
	view   string
	onKey  func(key string)
	width  int
	height int
}

func NewRegion(id string, sender dispatcher.Sender) *Region {
	return &Region{id: id, sender: sender}
}

var _ handle.Mount = (*Region)(nil)

func (r *Region) ID() string {
	return r.id
}

func (r *Region) Render(view string) {
	r.mu.Lock()
	r.view = view
	r.mu.Unlock()
	r.sender.Send(RegionUpdatedMsg{ID: r.id})
}

func (r *Region) OnKey(fn func(key string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onKey = fn
}

func (r *Region) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Region) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

// HandleKey passes a key press to the mounted application
func (r *Region) HandleKey(key string) bool {
	r.mu.Lock()
	fn := r.onKey
	r.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(key)
	return true
}

func (r *Region) View() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}
