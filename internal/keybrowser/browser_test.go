package keybrowser

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/api"
	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/handle"
)

type fakeMount struct {
	mu    sync.Mutex
	view  string
	onKey func(string)
}

func (m *fakeMount) ID() string { return handle.MainMountID }

func (m *fakeMount) Render(view string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = view
}

func (m *fakeMount) OnKey(fn func(string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onKey = fn
}

func (m *fakeMount) Size() (int, int) { return 80, 20 }

func (m *fakeMount) View() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *fakeMount) press(key string) {
	m.mu.Lock()
	fn := m.onKey
	m.mu.Unlock()
	fn(key)
}

func newBrowser(t *testing.T, store *api.MemoryStore) (*Browser, *fakeMount) {
	t.Helper()
	srv := httptest.NewServer(api.NewServer(store, api.Options{Version: "3.1"}).Handler())
	t.Cleanup(srv.Close)

	mount := &fakeMount{}
	b, err := New(mount, handle.Config{APIURL: srv.URL + "/api/v1/", AppVersion: "3.1"}, Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, mount
}

func waitView(t *testing.T, mount *fakeMount, substr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(mount.View(), substr)
	}, 2*time.Second, 10*time.Millisecond, "view never contained %q", substr)
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for effect")
		return ""
	}
}

func seededStore() *api.MemoryStore {
	store := api.NewMemoryStore()
	store.Set("main", "user:1", "a")
	store.Set("main", "user:2", "b")
	return store
}

func TestBrowserRendersKeys(t *testing.T) {
	_, mount := newBrowser(t, seededStore())

	waitView(t, mount, "user:2")
	assert.Contains(t, mount.View(), "Server main (1/1)")
	assert.Contains(t, mount.View(), "v3.1")
}

func TestDeleteConfirmed(t *testing.T) {
	store := seededStore()
	b, mount := newBrowser(t, store)
	waitView(t, mount, "user:1")

	mount.press("d")
	prompt := receive(t, b.Ports().ShowConfirmationDialog.Out())
	assert.Equal(t, "Delete key <b>user:1</b> from <i>main</i>?<br>This cannot be undone.", prompt)

	b.DialogClosed(effect.Confirmed)
	assert.Equal(t, "Deleted user:1", receive(t, b.Ports().ToastSuccess.Out()))

	require.Eventually(t, func() bool {
		keys, err := store.Keys(context.Background(), "main", "*")
		return err == nil && len(keys) == 1 && keys[0] == "user:2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDeleteCancelled(t *testing.T) {
	store := seededStore()
	b, mount := newBrowser(t, store)
	waitView(t, mount, "user:1")

	mount.press("j")
	mount.press("d")
	prompt := receive(t, b.Ports().ShowConfirmationDialog.Out())
	assert.Contains(t, prompt, "<b>user:2</b>")

	b.DialogClosed(effect.Cancelled)
	assert.Equal(t, "Kept user:2", receive(t, b.Ports().ToastInfo.Out()))

	keys, err := store.Keys(context.Background(), "main", "*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestOnePendingConfirmation(t *testing.T) {
	b, mount := newBrowser(t, seededStore())
	waitView(t, mount, "user:1")

	mount.press("d")
	receive(t, b.Ports().ShowConfirmationDialog.Out())
	mount.press("d")

	assert.Equal(t, "Confirm or cancel the pending delete first", receive(t, b.Ports().ToastWarning.Out()))
}

func TestPromptEscapesKey(t *testing.T) {
	store := api.NewMemoryStore()
	store.Set("main", "<script>", "x")
	b, mount := newBrowser(t, store)
	waitView(t, mount, "<script>")

	mount.press("d")
	prompt := receive(t, b.Ports().ShowConfirmationDialog.Out())
	assert.Contains(t, prompt, "<b>&lt;script&gt;</b>")
}

func TestDeleteFailureToastsError(t *testing.T) {
	store := seededStore()
	b, mount := newBrowser(t, store)
	waitView(t, mount, "user:1")

	mount.press("d")
	receive(t, b.Ports().ShowConfirmationDialog.Out())
	require.NoError(t, store.Delete(context.Background(), "main", "user:1"))

	b.DialogClosed(effect.Confirmed)
	msg := receive(t, b.Ports().ToastError.Out())
	assert.Contains(t, msg, "404")
}

func TestNoServersWarns(t *testing.T) {
	b, _ := newBrowser(t, api.NewMemoryStore())
	assert.Equal(t, "No servers configured", receive(t, b.Ports().ToastWarning.Out()))
}

func TestInfoToastShowsVersion(t *testing.T) {
	b, mount := newBrowser(t, seededStore())
	waitView(t, mount, "user:1")

	mount.press("i")
	assert.Contains(t, receive(t, b.Ports().ToastInfo.Out()), "App version 3.1")
}

func TestNewRequiresAPIURL(t *testing.T) {
	_, err := New(&fakeMount{}, handle.Config{}, Options{})
	assert.Error(t, err)
}

func TestDecodeOutcome(t *testing.T) {
	logger := zap.NewNop()
	assert.Equal(t, effect.Confirmed, decodeOutcome("ok", logger))
	assert.Equal(t, effect.Cancelled, decodeOutcome("cancel", logger))
	assert.Equal(t, effect.Cancelled, decodeOutcome("yes", logger))
}

func TestUnknownWireOutcomeKeepsKey(t *testing.T) {
	store := seededStore()
	b, mount := newBrowser(t, store)
	waitView(t, mount, "user:1")

	mount.press("d")
	receive(t, b.Ports().ShowConfirmationDialog.Out())
	require.NoError(t, b.outcomes.Send("maybe"))

	assert.Equal(t, "Kept user:1", receive(t, b.Ports().ToastInfo.Out()))
	keys, err := store.Keys(context.Background(), "main", "*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestKeyNamesCannotDriveTerminal(t *testing.T) {
	line := renderKey("evil\x1b]0;owned\x07\x1b[2J", false, false, 80)
	assert.Equal(t, "  evil", line)
	assert.NotContains(t, line, "\x1b")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "…", truncate("abcdef", 1))
}
