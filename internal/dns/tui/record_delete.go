package tui

import (
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/tui/components"
	"ffc/zonectl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type recordDeleteModel struct {
	record       domain.Record
	zone         string
	providerName string

	confirmIdx int // 0 = Delete, 1 = Cancel

	width  int
	height int
}

func newRecordDeleteModel(record domain.Record, zone, providerName string, width, height int) recordDeleteModel {
	return recordDeleteModel{
		record:       record,
		zone:         zone,
		providerName: providerName,
		confirmIdx:   1, // Default to Cancel for safety
		width:        width,
		height:       height,
	}
}

func (m recordDeleteModel) Init() tea.Cmd {
	return nil
}

func (m recordDeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return navigateBackMsg{} }
		case "left", "h":
			if m.confirmIdx > 0 {
				m.confirmIdx--
			}
		case "right", "l":
			if m.confirmIdx < 1 {
				m.confirmIdx++
			}
		case "enter":
			if m.confirmIdx == 1 {
				return m, func() tea.Msg { return navigateBackMsg{} }
			}
			rec := m.record
			return m, func() tea.Msg { return deleteConfirmedMsg{record: rec} }
		}
	}

	return m, nil
}

func (m recordDeleteModel) View() string {
	header := components.Header(m.width, m.zone+" > delete", m.providerName)

	bindings := []components.KeyBinding{
		{Key: "←/→", Desc: "select"},
		{Key: "enter", Desc: "confirm"},
		{Key: "esc", Desc: "cancel"},
	}
	footer := components.Footer(m.width, bindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderCard())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m recordDeleteModel) renderCard() string {
	title := lipgloss.NewStyle().Foreground(styles.Red).Bold(true).Render("Delete DNS Record")

	r := m.record

	fields := []string{
		lipgloss.JoinHorizontal(lipgloss.Left, lipgloss.NewStyle().Width(10).Render(styles.Label.Render("Name")), styles.Value.Render(r.Name)),
		lipgloss.JoinHorizontal(lipgloss.Left, lipgloss.NewStyle().Width(10).Render(styles.Label.Render("Type")), styles.Value.Render(string(r.Type))),
		lipgloss.JoinHorizontal(lipgloss.Left, lipgloss.NewStyle().Width(10).Render(styles.Label.Render("Content")), styles.Value.Render(r.Content)),
		lipgloss.JoinHorizontal(lipgloss.Left, lipgloss.NewStyle().Width(10).Render(styles.Label.Render("TTL")), styles.Value.Render(formatTTL(r.TTL))),
	}

	warning := styles.ErrorText.Render("This action cannot be undone.")

	delBtn := "[ Delete ]"
	canBtn := "[ Cancel ]"

	if m.confirmIdx == 0 {
		delBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Red).Render(delBtn)
		canBtn = styles.MutedText.Render(canBtn)
	} else {
		delBtn = lipgloss.NewStyle().Foreground(styles.Red).Render(delBtn)
		canBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Gray).Render(canBtn)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, delBtn, "  ", canBtn)

	cardContent := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(fields, "\n"),
		"",
		warning,
	)

	cardStyle := styles.Card.BorderForeground(styles.Red)

	return lipgloss.JoinVertical(lipgloss.Center, cardStyle.Render(cardContent), "", buttons)
}
