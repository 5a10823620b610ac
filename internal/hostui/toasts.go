package hostui

import (
	"time"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/models"
)

// ToastMsg carries a toast into the UI loop
type ToastMsg struct {
	Kind effect.ToastKind
	Text string
}

const (
	DefaultToastTTL       = 5 * time.Second
	DefaultToastMaxOnView = 5
)

// Toasts keeps the notifications on screen. UI loop only.
type Toasts struct {
	items []models.Toast
	ttl   time.Duration
	max   int
	now   func() time.Time
}

func NewToasts(ttl time.Duration, max int) *Toasts {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	if max <= 0 {
		max = DefaultToastMaxOnView
	}
	return &Toasts{ttl: ttl, max: max, now: time.Now}
}

// Add shows a toast, evicting the oldest ones beyond the on-screen limit
func (t *Toasts) Add(kind effect.ToastKind, text string) {
	t.items = append(t.items, models.Toast{
		Kind:    kind,
		Text:    text,
		Expires: t.now().Add(t.ttl),
	})
	if len(t.items) > t.max {
		t.items = append([]models.Toast(nil), t.items[len(t.items)-t.max:]...)
	}
}

// Prune drops expired toasts
func (t *Toasts) Prune() {
	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.Expires) {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

func (t *Toasts) Items() []models.Toast {
	return append([]models.Toast(nil), t.items...)
}
