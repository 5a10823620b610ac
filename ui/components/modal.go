package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/ui/styles"
)

const (
	ConfirmLabel = "OK"
	CancelLabel  = "Cancel"
)

// RenderModal draws the confirmation dialog centered in width x height.
// body is already rendered terminal text.
func RenderModal(body string, confirmFocused bool, width, height int) string {
	modalWidth := width / 2
	if modalWidth < 30 {
		modalWidth = width - 4
	}
	if modalWidth < 10 {
		modalWidth = 10
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonStyle(confirmFocused).Render(ConfirmLabel),
		styles.ButtonStyle(!confirmFocused).Render(CancelLabel),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, body, "", buttons)
	box := styles.ModalStyle(modalWidth).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
