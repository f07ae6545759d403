// Package browse provides a terminal UI over the persisted job tables.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobsink/internal/model"
)

// Lines per record in the list view (title + subtitle + blank separator).
const recordItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	recordTitleStyle = lipgloss.NewStyle().
				Bold(true)

	recordSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)
)

type browseModel struct {
	board    Board
	records  []model.Record
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool

	view     viewState
	wantQuit bool
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(m.width, max(m.height-4, 1))
		m.ready = true
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.wantQuit = true
			return m, tea.Quit
		case "q":
			if m.view == viewDetail {
				m.view = viewList
				m.syncViewport()
				return m, nil
			}
			m.wantQuit = true
			return m, tea.Quit
		case "esc", "backspace":
			if m.view == viewDetail {
				m.view = viewList
				m.syncViewport()
				return m, nil
			}
			// Back to the board picker.
			return m, tea.Quit
		case "up", "k":
			if m.view == viewList && m.cursor > 0 {
				m.cursor--
				m.syncViewport()
				return m, nil
			}
		case "down", "j":
			if m.view == viewList && m.cursor < len(m.records)-1 {
				m.cursor++
				m.syncViewport()
				return m, nil
			}
		case "enter":
			if m.view == viewList && len(m.records) > 0 {
				m.view = viewDetail
				m.syncViewport()
				return m, nil
			}
		case "o":
			if len(m.records) > 0 {
				if u := m.records[m.cursor].URL; u != "" {
					openBrowser(u)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// syncViewport re-renders the active view's content and keeps the cursor
// visible in list mode.
func (m *browseModel) syncViewport() {
	if !m.ready {
		return
	}
	if m.view == viewDetail {
		m.viewport.SetContent(m.renderDetail())
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(m.renderList())
	top := m.cursor * recordItemHeight
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom := top + recordItemHeight; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m browseModel) renderList() string {
	if len(m.records) == 0 {
		return recordSubtitleStyle.Render("  (no rows — run the ETL first)")
	}

	var b strings.Builder
	for i, r := range m.records {
		title := r.Position
		if title == "" {
			title = "(untitled)"
		}
		subtitle := subtitleLine(r)
		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render(" "+title+" ") + "\n")
			b.WriteString(selectedSubtitleStyle.Render(" "+subtitle+" ") + "\n\n")
		} else {
			b.WriteString(recordTitleStyle.Render(" "+title) + "\n")
			b.WriteString(recordSubtitleStyle.Render(" "+subtitle) + "\n\n")
		}
	}
	return b.String()
}

func subtitleLine(r model.Record) string {
	parts := []string{}
	if r.Company != "" {
		parts = append(parts, r.Company)
	}
	if r.Location != "" {
		parts = append(parts, r.Location)
	}
	if r.DatePosted != nil {
		parts = append(parts, r.DatePosted.Format("2006-01-02"))
	}
	if r.SalaryMin > 0 || r.SalaryMax > 0 {
		parts = append(parts, fmt.Sprintf("%d–%d", r.SalaryMin, r.SalaryMax))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " · ")
}

func (m browseModel) renderDetail() string {
	r := m.records[m.cursor]

	var b strings.Builder
	title := r.Position
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(detailTitleStyle.Render(title) + "\n")

	field := func(label, value string) {
		if value == "" {
			value = "—"
		}
		b.WriteString(detailLabelStyle.Render(label) + value + "\n")
	}

	field("Company", r.Company)
	field("Location", r.Location)
	field("Label", r.Label)
	if r.DatePosted != nil {
		field("Posted", r.DatePosted.Format("2006-01-02 15:04 MST"))
	} else {
		field("Posted", "")
	}
	field("Salary", fmt.Sprintf("%d – %d", r.SalaryMin, r.SalaryMax))
	field("URL", r.URL)
	field("Board ID", r.ProviderID)
	field("Key", r.Key)

	return b.String()
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("%s — %d rows", m.board.Table, len(m.records)))

	var hint string
	switch m.view {
	case viewDetail:
		hint = "esc back  o open url  q list  ctrl+c quit"
	default:
		hint = "↑/↓ navigate  enter detail  o open url  esc boards  q quit"
	}
	status := statusBarStyle.Width(m.width).Render(hint)

	return header + "\n" + m.viewport.View() + "\n" + status
}

// RunBrowseTUI shows the record list for one board. Returns true if the user
// asked to quit entirely (rather than go back to the picker).
func RunBrowseTUI(board Board, records []model.Record) (bool, error) {
	m := browseModel{
		board:   board,
		records: records,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return true, err
	}

	final := result.(browseModel)
	return final.wantQuit, nil
}

// openBrowser opens the given URL in the OS default browser, best effort.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
