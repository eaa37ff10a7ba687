package tui

import (
	"context"
	"fmt"
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/dns/services"
	"ffc/zonectl/internal/tui/components"
	"ffc/zonectl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Match statuses shown in the MATCH column.
const (
	matchStandard = "standard"
	matchDrift    = "drift"
	matchConflict = "conflict"
	matchExtra    = "extra"
)

// --- Messages ---

type recordsLoadedMsg struct {
	records []domain.Record
}

type recordsErrorMsg struct {
	err error
}

// --- Record list model ---

type recordListModel struct {
	service      *services.Service
	providerName string
	zone         string
	desired      []domain.RecordSpec

	records   []domain.Record
	matches   map[string]string
	filtered  []domain.Record
	cursor    int
	listStart int // for scrolling

	typeFilter string // e.g. "A", "CNAME", "" for all
	typeCycle  []string

	width  int
	height int

	loading          bool
	spinner          spinner.Model
	err              error
	status           string
	statusIsError    bool
	persistentStatus string
}

func newRecordListModel(svc *services.Service, providerName, zone string, desired []domain.RecordSpec, width, height int) recordListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	cycle := []string{""}
	for _, t := range domain.ManagedTypes {
		cycle = append(cycle, string(t))
	}

	return recordListModel{
		service:      svc,
		providerName: providerName,
		zone:         zone,
		desired:      desired,
		typeCycle:    cycle,
		typeFilter:   "",
		width:        width,
		height:       height,
		loading:      true,
		spinner:      s,
	}
}

func (m recordListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRecordsCmd())
}

func (m recordListModel) loadRecordsCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.service.ListRecords(context.Background(), m.zone, domain.RecordFilter{})
		if err != nil {
			return recordsErrorMsg{err}
		}
		return recordsLoadedMsg{records}
	}
}

// matchStatuses classifies every record against the standard set. A
// record is "standard" when a desired spec matches it exactly, "drift"
// when it sits in a single-slot spec's place with the wrong value,
// "conflict" when it blocks a desired record of an exclusive type, and
// "extra" when the standard set says nothing about it.
func matchStatuses(zone string, desired []domain.RecordSpec, records []domain.Record) map[string]string {
	statuses := make(map[string]string, len(records))
	for _, spec := range desired {
		out := reconcile.Classify(zone, spec, records)
		switch out.Verdict {
		case reconcile.VerdictSatisfied:
			if out.Existing != nil {
				statuses[out.Existing.ID] = matchStandard
			}
		case reconcile.VerdictNeedsUpdate:
			if out.Existing != nil {
				statuses[out.Existing.ID] = matchDrift
			}
		case reconcile.VerdictConflict:
			for _, rec := range out.Conflicts {
				statuses[rec.ID] = matchConflict
			}
		}
	}
	for _, rec := range records {
		if _, ok := statuses[rec.ID]; !ok {
			statuses[rec.ID] = matchExtra
		}
	}
	return statuses
}

func (m *recordListModel) applyFilter() {
	m.filtered = make([]domain.Record, 0)
	for _, r := range m.records {
		if m.typeFilter == "" || strings.EqualFold(string(r.Type), m.typeFilter) {
			m.filtered = append(m.filtered, r)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	m.updateScroll()
}

func (m *recordListModel) updateScroll() {
	headerH, footerH, statusH := 3, 1, 1 // approximate
	contentH := max(m.height-headerH-footerH-statusH, 1)
	filterBarH := 1
	tableH := max(contentH-filterBarH-1, 1)
	visibleRows := max(tableH-3, 1)

	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+visibleRows {
		m.listStart = m.cursor - visibleRows + 1
	}
}

func (m recordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc", "backspace", "q":
			return m, func() tea.Msg { return navigateBackMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.updateScroll()
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			m.updateScroll()
		case "g":
			m.cursor = 0
			m.updateScroll()
		case "G":
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
			}
			m.updateScroll()
		case "f":
			idx := 0
			for i, t := range m.typeCycle {
				if t == m.typeFilter {
					idx = i
					break
				}
			}
			idx = (idx + 1) % len(m.typeCycle)
			m.typeFilter = m.typeCycle[idx]
			m.applyFilter()
		case "r":
			m.loading = true
			m.err = nil
			return m, m.loadRecordsCmd()
		case "enter":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				match := m.matches[rec.ID]
				return m, func() tea.Msg { return navigateToShowMsg{record: rec, match: match} }
			}
		case "d":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				return m, func() tea.Msg { return navigateToDeleteMsg{record: rec} }
			}
		}

	case recordsLoadedMsg:
		m.loading = false
		m.records = msg.records
		m.matches = matchStatuses(m.zone, m.desired, m.records)
		m.applyFilter()

		onStandard := 0
		for _, status := range m.matches {
			if status == matchStandard {
				onStandard++
			}
		}
		status := fmt.Sprintf("%d record(s), %d on the standard set", len(m.records), onStandard)
		if m.persistentStatus != "" {
			status = m.persistentStatus + " | " + status
		}
		m.status = status

	case recordsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m recordListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, m.zone, m.providerName)

	var footerBindings []components.KeyBinding
	if m.loading {
		footerBindings = []components.KeyBinding{
			{Key: "ctrl+c", Desc: "quit"},
		}
	} else {
		footerBindings = []components.KeyBinding{
			{Key: "j/k", Desc: "nav"},
			{Key: "enter", Desc: "show"},
			{Key: "d", Desc: "delete"},
			{Key: "f", Desc: "filter"},
			{Key: "r", Desc: "refresh"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, footerBindings)

	statusBar := ""
	if m.err != nil {
		statusBar = components.StatusBar(m.width, "Error: "+m.err.Error(), true)
	} else if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.statusIsError)
	}

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := max(m.height-headerH-footerH-statusH, 1)

	content := m.renderContent(contentH)

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m recordListModel) renderContent(height int) string {
	if m.loading {
		loadingText := m.spinner.View() + "  Fetching records…"
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(loadingText),
		)
	}

	if m.err != nil {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	if len(m.records) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No records found for this zone."),
		)
	}

	filterBar := m.renderFilterBar()
	tableH := max(height-lipgloss.Height(filterBar)-1, 1) // -1 for margin
	table := m.renderTable(tableH)

	content := lipgloss.JoinVertical(lipgloss.Left, filterBar, "", table)

	contentLines := strings.Split(content, "\n")
	if len(contentLines) < height {
		padding := strings.Repeat("\n", height-len(contentLines))
		content += padding
	}

	return content
}

func (m recordListModel) renderFilterBar() string {
	var parts []string
	parts = append(parts, "  Filter: ")

	for _, t := range m.typeCycle {
		label := t
		if t == "" {
			label = "All"
		}

		if t == m.typeFilter {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}

	return strings.Join(parts, "")
}

func (m recordListModel) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Top,
			styles.MutedText.Render("\nNo records match the current filter."),
		)
	}

	type column struct {
		title string
		width int
	}

	available := m.width - 4

	cols := []column{
		{title: "NAME", width: 24},
		{title: "TYPE", width: 7},
		{title: "CONTENT", width: 28},
		{title: "TTL", width: 6},
		{title: "MATCH", width: 10},
	}

	// Distribute remaining width to the CONTENT column
	total := 0
	for _, c := range cols {
		total += c.width
	}
	if available > total {
		extra := available - total
		for i := range cols {
			if cols[i].title == "CONTENT" {
				cols[i].width += extra
				break
			}
		}
	}

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = styles.TableHeader.
			Width(col.width).
			Render(col.title)
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	sep := styles.MutedText.Render(strings.Repeat("─", available))

	visibleRows := max(height-3, 1)

	end := m.listStart + visibleRows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	var rows []string
	rows = append(rows, headerRow, sep)

	for i := m.listStart; i < end; i++ {
		r := m.filtered[i]

		contentStr := r.Content
		if len(contentStr) > cols[2].width-2 {
			contentStr = contentStr[:cols[2].width-5] + "..."
		}

		match := m.matches[r.ID]

		cells := []string{
			lipgloss.NewStyle().Width(cols[0].width).Render(r.Name),
			lipgloss.NewStyle().Width(cols[1].width).Render(typeStyle(r.Type).Render(string(r.Type))),
			lipgloss.NewStyle().Width(cols[2].width).Render(contentStr),
			lipgloss.NewStyle().Width(cols[3].width).Render(formatTTL(r.TTL)),
			lipgloss.NewStyle().Width(cols[4].width).Render(styles.MatchStyle(match).Render(match)),
		}

		rowContent := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

		cursor := "  "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render("> ")
			rowStyle = styles.TableSelectedRow
		}

		renderedRow := lipgloss.JoinHorizontal(lipgloss.Top, cursor, rowStyle.Render(rowContent))
		rows = append(rows, renderedRow)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// typeStyle colors a record type the same way everywhere in the browser.
func typeStyle(t domain.RecordType) lipgloss.Style {
	switch t {
	case domain.RecordTypeA, domain.RecordTypeAAAA:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case domain.RecordTypeCNAME:
		return lipgloss.NewStyle().Foreground(styles.Yellow)
	case domain.RecordTypeMX:
		return lipgloss.NewStyle().Foreground(styles.Blue)
	case domain.RecordTypeTXT:
		return styles.MutedText
	}
	return styles.Value
}

// formatTTL renders a TTL, with the provider's automatic sentinel spelled
// out.
func formatTTL(ttl int) string {
	if ttl == 1 {
		return "auto"
	}
	return fmt.Sprintf("%d", ttl)
}
