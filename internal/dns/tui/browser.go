// Package tui implements the interactive record browser. It shows one
// zone's records annotated with their match status against a standard
// record set, with a detail view and a guarded delete.
package tui

import (
	"context"
	"fmt"
	"os"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/dns/services"
	historylog "ffc/zonectl/internal/history"
	"ffc/zonectl/internal/tui/components"
	"ffc/zonectl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Navigation messages ---
// Sent by child models to request view transitions.

type navigateToShowMsg struct {
	record domain.Record
	match  string
}

type navigateToDeleteMsg struct {
	record domain.Record
}

type navigateBackMsg struct{}

// --- Action messages ---

// deleteConfirmedMsg is sent when the user confirms a delete.
type deleteConfirmedMsg struct {
	record domain.Record
}

// deleteResultMsg carries the outcome of an applied delete.
type deleteResultMsg struct {
	record domain.Record
	report *reconcile.Report
	err    error
}

// --- Top-level browser model ---

type browserView int

const (
	browserViewList browserView = iota
	browserViewShow
	browserViewDelete
	browserViewAction // spinner while the provider call is in flight
)

type browserModel struct {
	service      *services.Service
	providerName string
	zone         string

	view browserView

	// Child models
	list   recordListModel
	show   recordShowModel
	delete recordDeleteModel

	// Action state
	actionSpinner spinner.Model
	actionLabel   string
	actionStatus  string
	actionIsError bool

	width  int
	height int
}

// RunBrowser starts the record browser for one zone. Records are
// annotated against the named standard set version; deletes run through
// the same plan/execute path as the CLI and are recorded in the local
// history.
func RunBrowser(service *services.Service, providerName, zone, standardVersion string) (tea.Model, error) {
	if standardVersion == "" {
		standardVersion = reconcile.DefaultStandardVersion
	}
	desired, err := reconcile.StandardSet(standardVersion, zone)
	if err != nil {
		return nil, err
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := browserModel{
		service:       service,
		providerName:  providerName,
		zone:          zone,
		view:          browserViewList,
		actionSpinner: s,
	}
	m.list = newRecordListModel(service, providerName, zone, desired, 0, 0)

	p := tea.NewProgram(m, tea.WithAltScreen())
	return p.Run()
}

func (m browserModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// A failed action parks on the action view; let the user leave.
		if m.view == browserViewAction && m.actionIsError {
			switch msg.String() {
			case "esc", "enter", "q":
				m.view = browserViewList
				m.list.loading = true
				return m, m.list.loadRecordsCmd()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateChild(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.view == browserViewAction {
			m.actionSpinner, cmd = m.actionSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		// Also forward to the list so its loading spinner animates.
		childModel, childCmd := m.updateChild(msg)
		m = childModel.(browserModel)
		cmds = append(cmds, childCmd)
		return m, tea.Batch(cmds...)

	case navigateToShowMsg:
		m.view = browserViewShow
		m.show = newRecordShowModel(msg.record, msg.match, m.zone, m.providerName, m.width, m.height)
		return m, m.show.Init()

	case navigateToDeleteMsg:
		m.view = browserViewDelete
		m.delete = newRecordDeleteModel(msg.record, m.zone, m.providerName, m.width, m.height)
		return m, m.delete.Init()

	case deleteConfirmedMsg:
		m.view = browserViewAction
		m.actionLabel = fmt.Sprintf("Deleting record %s", msg.record.ID)
		m.actionIsError = false
		m.actionStatus = ""
		return m, tea.Batch(m.actionSpinner.Tick, func() tea.Msg {
			report, err := m.service.DeleteRecord(context.Background(), m.zone, msg.record.ID, reconcile.Apply)
			if err == nil {
				recordDeletion(report)
			}
			return deleteResultMsg{record: msg.record, report: report, err: err}
		})

	case deleteResultMsg:
		if msg.err != nil {
			m.actionIsError = true
			m.actionStatus = msg.err.Error()
			return m, nil
		}
		m.view = browserViewList
		if msg.report != nil && msg.report.Deleted > 0 {
			m.list.persistentStatus = fmt.Sprintf("Deleted record %s", msg.record.ID)
		} else {
			m.list.persistentStatus = fmt.Sprintf("Record %s was already gone", msg.record.ID)
		}
		m.list.statusIsError = false
		m.list.loading = true
		return m, m.list.loadRecordsCmd()

	case navigateBackMsg:
		switch m.view {
		case browserViewShow, browserViewDelete:
			m.view = browserViewList
			return m, nil
		case browserViewList:
			return m, tea.Quit
		}
	}

	childModel, cmd := m.updateChild(msg)
	m = childModel.(browserModel)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m browserModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case browserViewList:
		var updated tea.Model
		updated, cmd = m.list.Update(msg)
		m.list = updated.(recordListModel)
	case browserViewShow:
		var updated tea.Model
		updated, cmd = m.show.Update(msg)
		m.show = updated.(recordShowModel)
	case browserViewDelete:
		var updated tea.Model
		updated, cmd = m.delete.Update(msg)
		m.delete = updated.(recordDeleteModel)
	}
	return m, cmd
}

func (m browserModel) View() string {
	switch m.view {
	case browserViewList:
		return m.list.View()
	case browserViewShow:
		return m.show.View()
	case browserViewDelete:
		return m.delete.View()
	case browserViewAction:
		header := components.Header(m.width, m.zone+" > delete", m.providerName)
		content := fmt.Sprintf("\n  %s %s\n", m.actionSpinner.View(), m.actionLabel)

		if m.actionStatus != "" {
			statusStyle := styles.Value
			if m.actionIsError {
				statusStyle = styles.ErrorText
			}
			content += fmt.Sprintf("\n  %s\n", statusStyle.Render(m.actionStatus))
		}
		if m.actionIsError {
			content += "\n  " + styles.MutedText.Render("press esc to go back") + "\n"
		}

		return lipgloss.JoinVertical(lipgloss.Left, header, content)
	}
	return ""
}

// recordDeletion persists an applied delete in the local history. Best
// effort: inside the alternate screen there is nowhere to surface a
// history failure, so it is dropped.
func recordDeletion(report *reconcile.Report) {
	repo, err := historylog.Open()
	if err != nil {
		return
	}
	defer repo.Close()
	_ = historylog.NewRecorder(repo, "record browse", os.Args[1:]).RecordReport(report)
}
