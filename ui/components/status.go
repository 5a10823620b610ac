package components

import (
	"strings"

	"github.com/Rorical/RoriHost/ui/styles"
)

func RenderStatus(status, version string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}
	if version != "" {
		statusContent += "  ·  v" + version
	}

	return statusStyle.Render(statusContent)
}

func RenderLoading(width, height int, loadingDots int) string {
	text := styles.ProgramStyle().Render("Loading application" + strings.Repeat(".", loadingDots))
	return styles.MainStyle(width, height).Render(text)
}
