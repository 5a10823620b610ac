package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriHost/internal/bootstrap"
	"github.com/Rorical/RoriHost/internal/models"
)

// HandleKeyMsg handles host level keys. Everything else belongs to the
// modal or the mounted application.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, modalOpen bool) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if !modalOpen {
			return tea.Quit
		}
	}
	return nil
}

// BootedMsg reports the end of the bootstrap sequence
type BootedMsg struct {
	Session *bootstrap.Session
	Err     error
}

func HandleBootedMsg(appModel *models.AppModel, msg BootedMsg) {
	appModel.Booting = false
	if msg.Err != nil {
		appModel.Err = msg.Err
		appModel.Status = "Error: " + msg.Err.Error()
		return
	}

	appModel.Config = msg.Session.Config
	appModel.Status = "Connected to " + msg.Session.Config.APIURL
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Booting {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
