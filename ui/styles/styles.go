package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/internal/effect"
)

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func MainStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height)
}

func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Center)
}

// toastColors mirrors the usual error/info/warning/success palette
var toastColors = map[effect.ToastKind]lipgloss.Color{
	effect.ToastError:   lipgloss.Color("196"),
	effect.ToastInfo:    lipgloss.Color("39"),
	effect.ToastWarning: lipgloss.Color("214"),
	effect.ToastSuccess: lipgloss.Color("42"),
}

func ToastStyle(kind effect.ToastKind) lipgloss.Style {
	color, ok := toastColors[kind]
	if !ok {
		color = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MaxWidth(48)
}

func ModalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width)
}

func ButtonStyle(focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	if focused {
		return style.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)
	}
	return style.
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("237"))
}
