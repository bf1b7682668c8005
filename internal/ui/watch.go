package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pulse/internal/diag"
)

// FetchFunc retrieves the host's current error state; the watch model
// polls it on a fixed interval.
type FetchFunc func() ([]diag.Simple, error)

type errorsMsg struct {
	diags []diag.Simple
	err   error
}

type pollMsg struct{}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

type watchModel struct {
	fetch    FetchFunc
	interval time.Duration
	spinner  spinner.Model
	diags    []diag.Simple
	fetchErr error
	fetched  bool
	lastAt   time.Time
	width    int
}

// NewWatchModel returns a Bubble Tea model that renders the host's live
// error state, refreshed every interval.
func NewWatchModel(fetch FetchFunc, interval time.Duration) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	if interval <= 0 {
		interval = time.Second
	}
	return &watchModel{
		fetch:    fetch,
		interval: interval,
		spinner:  sp,
		width:    80,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errorsMsg:
		m.diags = msg.diags
		m.fetchErr = msg.err
		m.fetched = true
		m.lastAt = time.Now()
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
	case pollMsg:
		return m, m.fetchCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *watchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		diags, err := m.fetch()
		return errorsMsg{diags: diags, err: err}
	}
}

func (m *watchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("pulse watch"))
	b.WriteString(" ")
	b.WriteString(m.spinner.View())
	if m.fetched {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" updated %s", m.lastAt.Format("15:04:05"))))
	}
	b.WriteString("\n\n")

	switch {
	case !m.fetched:
		b.WriteString(dimStyle.Render("connecting to host..."))
	case m.fetchErr != nil:
		b.WriteString(offlineStyle.Render("host unreachable: " + m.fetchErr.Error()))
	case len(m.diags) == 0:
		b.WriteString(okStyle.Render("no errors"))
	default:
		b.WriteString(errStyle.Render(fmt.Sprintf("%d issue(s)", len(m.diags))))
		b.WriteString("\n")
		for _, d := range m.diags {
			b.WriteString(m.renderRow(d))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *watchModel) renderRow(d diag.Simple) string {
	style := errStyle
	if d.Severity == diag.SevWarning {
		style = warnStyle
	} else if d.Severity == diag.SevInfo {
		style = dimStyle
	}
	loc := "(no file)"
	if d.FilePath != "" {
		loc = filepath.Base(d.FilePath)
		if d.Located() {
			loc = fmt.Sprintf("%s:%d", loc, *d.Start)
		}
	}
	msg := strings.ReplaceAll(d.Message, "\n", " | ")
	line := fmt.Sprintf("  %s %s %s", style.Render(d.Severity.String()), dimStyle.Render(loc), msg)
	maxWidth := m.width
	if maxWidth < 20 {
		maxWidth = 20
	}
	return runewidth.Truncate(line, maxWidth, "…")
}
