package tui

import (
	"errors"
	"fmt"
	"os"

	dnsproviders "ffc/zonectl/internal/dns/providers"
	"ffc/zonectl/internal/services/auth"
	"ffc/zonectl/internal/tui/components"
	"ffc/zonectl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Provider status ---

type providerStatus struct {
	name   string
	status string // "logged in", "not logged in", or error message
	ok     bool
}

type envStatus struct {
	name string
	set  bool
}

// --- Auth status model ---

type authStatusModel struct {
	store auth.Store

	statuses []providerStatus
	envVars  []envStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status TUI. It shows the
// keychain state per registered provider plus the token environment
// variables the credential chain consults before the keychain.
func RunAuthStatus(store auth.Store) error {
	providerNames := dnsproviders.List()

	statuses := make([]providerStatus, 0, len(providerNames))
	for _, name := range providerNames {
		_, err := store.GetToken(name)
		switch {
		case err == nil:
			statuses = append(statuses, providerStatus{name: name, status: "logged in", ok: true})
		case errors.Is(err, auth.ErrTokenNotFound):
			statuses = append(statuses, providerStatus{name: name, status: "not logged in", ok: false})
		default:
			statuses = append(statuses, providerStatus{name: name, status: fmt.Sprintf("error: %v", err), ok: false})
		}
	}

	envVars := make([]envStatus, 0, len(auth.TokenEnvVars))
	for _, name := range auth.TokenEnvVars {
		envVars = append(envVars, envStatus{name: name, set: os.Getenv(name) != ""})
	}

	m := authStatusModel{
		store:    store,
		statuses: statuses,
		envVars:  envVars,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footerBindings := []components.KeyBinding{
		{Key: "q", Desc: "quit"},
	}
	footer := components.Footer(m.width, footerBindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := m.renderContent(contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No providers registered."),
		)
	}

	title := styles.Title.Render("Provider Authentication")

	cardWidth := 52
	labelWidth := 16

	rows := make([]string, 0, len(m.statuses))
	for _, ps := range m.statuses {
		nameStyle := styles.Label.Width(labelWidth)
		name := nameStyle.Render(ps.name)

		var statusText string
		if ps.ok {
			statusText = styles.SuccessText.Render("logged in")
		} else {
			statusText = styles.MutedText.Render(ps.status)
		}

		rows = append(rows, name+statusText)
	}

	content := ""
	for i, row := range rows {
		content += row
		if i < len(rows)-1 {
			content += "\n"
		}
	}

	card := styles.Card.Width(cardWidth).Render(content)

	envTitle := styles.Subtitle.Render("Environment")
	envRows := make([]string, 0, len(m.envVars))
	for _, ev := range m.envVars {
		nameStyle := styles.Label.Width(32)
		name := nameStyle.Render(ev.name)
		state := styles.MutedText.Render("unset")
		if ev.set {
			state = styles.SuccessText.Render("set")
		}
		envRows = append(envRows, name+state)
	}

	envContent := ""
	for i, row := range envRows {
		envContent += row
		if i < len(envRows)-1 {
			envContent += "\n"
		}
	}

	envCard := styles.Card.Width(cardWidth).Render(envContent)

	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card, "", envTitle, envCard)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
