package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriHost/internal/bootstrap"
	"github.com/Rorical/RoriHost/internal/handle"
	"github.com/Rorical/RoriHost/internal/models"
)

func TestHandleKeyMsg(t *testing.T) {
	m := &models.AppModel{}

	assert.NotNil(t, HandleKeyMsg(m, tea.KeyMsg{Type: tea.KeyCtrlC}, true))
	assert.NotNil(t, HandleKeyMsg(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, false))
	assert.Nil(t, HandleKeyMsg(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, true))
	assert.Nil(t, HandleKeyMsg(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, false))
}

func TestHandleBootedMsg(t *testing.T) {
	m := &models.AppModel{Booting: true}
	cfg := handle.Config{APIURL: "http://h/api/v1/", AppVersion: "7"}

	HandleBootedMsg(m, BootedMsg{Session: &bootstrap.Session{Config: cfg}})

	assert.False(t, m.Booting)
	assert.Equal(t, cfg, m.Config)
	assert.Equal(t, "Connected to http://h/api/v1/", m.Status)
	assert.NoError(t, m.Err)
}

func TestHandleBootedMsgError(t *testing.T) {
	m := &models.AppModel{Booting: true}

	HandleBootedMsg(m, BootedMsg{Err: errors.New("bad location")})

	assert.False(t, m.Booting)
	assert.EqualError(t, m.Err, "bad location")
	assert.Equal(t, "Error: bad location", m.Status)
}

func TestHandleTickMsgAnimatesOnlyWhileBooting(t *testing.T) {
	m := &models.AppModel{Booting: true}
	for i := 0; i < 5; i++ {
		assert.NotNil(t, HandleTickMsg(m))
	}
	assert.Equal(t, 1, m.LoadingDots)

	m.Booting = false
	HandleTickMsg(m)
	assert.Equal(t, 1, m.LoadingDots)
}

func TestHandleWindowSizeMsg(t *testing.T) {
	m := &models.AppModel{}
	HandleUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40}, false)
	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)
}
