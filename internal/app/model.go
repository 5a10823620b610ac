package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriHost/internal/bootstrap"
	"github.com/Rorical/RoriHost/internal/hostui"
	"github.com/Rorical/RoriHost/internal/update"
	"github.com/Rorical/RoriHost/ui/components"
	"github.com/Rorical/RoriHost/ui/styles"
)

// statusHeight is the status bar below the main region
const statusHeight = 1

func bootedMsg(session *bootstrap.Session, err error) tea.Msg {
	return update.BootedMsg{Session: session, Err: err}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.boot,
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.Region().SetSize(msg.Width, max(msg.Height-statusHeight, 0))
	case update.BootedMsg:
		m.session = msg.Session
	case update.TickMsg:
		m.host.Toasts().Prune()
		m.appModel.Toasts = m.host.Toasts().Items()
	case tea.KeyMsg:
		if cmd := update.HandleKeyMsg(&m.appModel, msg, m.host.Modal().IsOpen()); cmd != nil {
			return m, cmd
		}
	case hostui.RegionUpdatedMsg:
		m.appModel.MainView = m.host.Region().View()
	}

	if m.host.Update(msg) {
		m.appModel.Toasts = m.host.Toasts().Items()
		return m, nil
	}

	cmd := update.HandleUpdate(&m.appModel, msg, m.host.Modal().IsOpen())
	return m, cmd
}

func (m *AppModel) View() string {
	width, height := m.appModel.Width, m.appModel.Height
	mainHeight := max(height-statusHeight, 0)

	var main string
	switch {
	case m.appModel.Booting:
		main = components.RenderLoading(width, mainHeight, m.appModel.LoadingDots)
	case m.host.Modal().IsOpen():
		main = m.host.Modal().View(width, mainHeight)
	default:
		main = m.renderMain(width, mainHeight)
	}

	var b strings.Builder
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Config.AppVersion, m.appModel.Booting, m.appModel.LoadingDots, width))
	return b.String()
}

// renderMain draws the application with toasts over its bottom rows
func (m *AppModel) renderMain(width, height int) string {
	toasts := components.RenderToasts(m.appModel.Toasts, width)
	if toasts == "" {
		return styles.MainStyle(width, height).Render(m.appModel.MainView)
	}

	toastHeight := lipgloss.Height(toasts)
	view := styles.MainStyle(width, max(height-toastHeight, 0)).MaxHeight(max(height-toastHeight, 0)).Render(m.appModel.MainView)
	return lipgloss.JoinVertical(lipgloss.Left, view, toasts)
}
