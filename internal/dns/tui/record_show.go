package tui

import (
	"fmt"
	"strconv"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/tui/components"
	"ffc/zonectl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type recordShowModel struct {
	record       domain.Record
	match        string
	zone         string
	providerName string
	width        int
	height       int
}

func newRecordShowModel(record domain.Record, match, zone, providerName string, width, height int) recordShowModel {
	return recordShowModel{
		record:       record,
		match:        match,
		zone:         zone,
		providerName: providerName,
		width:        width,
		height:       height,
	}
}

func (m recordShowModel) Init() tea.Cmd {
	return nil
}

func (m recordShowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "left", "h", "q":
			return m, func() tea.Msg { return navigateBackMsg{} }
		case "d":
			return m, func() tea.Msg { return navigateToDeleteMsg{record: m.record} }
		}
	}

	return m, nil
}

func (m recordShowModel) View() string {
	breadcrumb := fmt.Sprintf("%s > %s", m.zone, m.record.Name)
	header := components.Header(m.width, breadcrumb, m.providerName)

	bindings := []components.KeyBinding{
		{Key: "d", Desc: "delete"},
		{Key: "esc", Desc: "back"},
	}
	footer := components.Footer(m.width, bindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := m.renderCard()

	content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m recordShowModel) renderCard() string {
	r := m.record

	titleRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Title.Render(r.Name),
		"  ",
		typeStyle(r.Type).Render(string(r.Type)),
	)

	proxied := "no"
	if r.Proxied {
		proxied = "yes"
	}

	fields := []struct {
		label string
		val   string
	}{
		{"ID", r.ID},
		{"Name", r.Name},
		{"Type", string(r.Type)},
		{"Content", r.Content},
		{"TTL", formatTTL(r.TTL)},
		{"Proxied", proxied},
	}

	if r.Type == domain.RecordTypeMX {
		fields = append(fields, struct {
			label string
			val   string
		}{"Priority", strconv.Itoa(r.Priority)})
	}

	if r.Comment != "" {
		fields = append(fields, struct {
			label string
			val   string
		}{"Comment", r.Comment})
	}

	if r.ModifiedOn != "" {
		fields = append(fields, struct {
			label string
			val   string
		}{"Modified", r.ModifiedOn})
	}

	var gridRows []string
	gridRows = append(gridRows, titleRow, "") // Title + empty line

	for _, f := range fields {
		row := lipgloss.JoinHorizontal(lipgloss.Left,
			lipgloss.NewStyle().Width(12).Render(styles.Label.Render(f.label)),
			styles.Value.Render(f.val),
		)
		gridRows = append(gridRows, row)
	}

	gridRows = append(gridRows, "", lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Width(12).Render(styles.Label.Render("Match")),
		styles.MatchIndicator(m.match),
	))

	content := lipgloss.JoinVertical(lipgloss.Left, gridRows...)
	return styles.Card.Render(content)
}
