package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriHost/internal/models"
)

// HandleUpdate handles the messages the host widgets did not consume
func HandleUpdate(appModel *models.AppModel, msg tea.Msg, modalOpen bool) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, modalOpen)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case BootedMsg:
		HandleBootedMsg(appModel, msg)
		return nil
	}
	return nil
}
