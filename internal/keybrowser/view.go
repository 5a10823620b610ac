package keybrowser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/internal/handle"
	"github.com/Rorical/RoriHost/internal/utils"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const helpLine = "j/k move • n/p page • tab server • d delete • r reload • i info"

func renderView(s state, cfg handle.Config, width, height int) string {
	var b strings.Builder

	server := "-"
	if len(s.servers) > 0 {
		server = fmt.Sprintf("%s (%d/%d)", utils.StripControl(s.servers[s.server]), s.server+1, len(s.servers))
	}
	b.WriteString(headerStyle.Render("Server " + server))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  page %d/%d  v%s", s.page.Page, s.page.PagesCount, cfg.AppVersion)))
	b.WriteString("\n\n")

	// header, blank line, blank line before help, help
	rows := height - 4
	if rows < 1 {
		rows = len(s.page.Keys)
	}

	switch {
	case s.loading && len(s.page.Keys) == 0:
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
	case s.err != "" && len(s.page.Keys) == 0:
		b.WriteString(errorStyle.Render(utils.StripControl(s.err)))
		b.WriteString("\n")
	case len(s.page.Keys) == 0:
		b.WriteString(mutedStyle.Render("No keys"))
		b.WriteString("\n")
	default:
		start := 0
		if s.cursor >= rows {
			start = s.cursor - rows + 1
		}
		end := min(start+rows, len(s.page.Keys))
		for i := start; i < end; i++ {
			b.WriteString(renderKey(s.page.Keys[i], i == s.cursor, s.page.Keys[i] == s.pending, width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpLine))
	return b.String()
}

func renderKey(key string, selected, pending bool, width int) string {
	key = utils.StripControl(key)
	line := "  " + key
	if selected {
		line = "> " + key
	}
	if width > 0 && lipgloss.Width(line) > width {
		line = truncate(line, width)
	}

	switch {
	case pending:
		return pendingStyle.Render(line)
	case selected:
		return selectedStyle.Render(line)
	default:
		return line
	}
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
