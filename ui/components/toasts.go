package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/internal/effect"
	"github.com/Rorical/RoriHost/internal/models"
	"github.com/Rorical/RoriHost/internal/utils"
	"github.com/Rorical/RoriHost/ui/styles"
)

// RenderToasts stacks toasts right aligned, newest at the bottom
func RenderToasts(toasts []models.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		box := styles.ToastStyle(toast.Kind).Render(toastIcon(toast) + " " + utils.StripControl(toast.Text))
		rendered = append(rendered, lipgloss.PlaceHorizontal(width, lipgloss.Right, box))
	}

	return strings.Join(rendered, "\n")
}

func toastIcon(toast models.Toast) string {
	switch toast.Kind {
	case effect.ToastError:
		return "✖"
	case effect.ToastWarning:
		return "!"
	case effect.ToastSuccess:
		return "✔"
	default:
		return "i"
	}
}
