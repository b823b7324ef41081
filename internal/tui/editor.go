package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/linsolve/internal/format"
	"github.com/san-kum/linsolve/internal/workbench"
)

const title = "Linear System Solver"

var actionLabels = strings.NewReplacer(
	"[Clear]", HighlightStyle.Render("[Clear]"),
	"[Solve...]", HighlightStyle.Render("[Solve...]"),
)

// Model is a minimal text editor: typing appends at the end of the buffer,
// ctrl+s solves, ctrl+l clears, f1 restores the help text.
type Model struct {
	session  *workbench.Session
	buf      []rune
	output   string
	failed   bool
	solvable bool
	width    int
	height   int
	quitting bool
}

func NewModel(s *workbench.Session) Model {
	m := Model{session: s, width: s.Config().Editor.Width}
	if s.Config().Editor.ShowHelp {
		m.buf = []rune(format.Intro)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyCtrlS:
		if m.solvable {
			m.solve()
		}
		return m, nil
	case tea.KeyCtrlL:
		m.buf, m.output, m.failed, m.solvable = nil, "", false, false
		return m, nil
	case tea.KeyF1:
		m.buf, m.output, m.failed, m.solvable = []rune(format.Intro), "", false, false
		return m, nil
	case tea.KeyEnter:
		m.insert('\n')
	case tea.KeyTab:
		m.insert('\t')
	case tea.KeySpace:
		m.insert(' ')
	case tea.KeyBackspace:
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
			m.edited()
		}
	case tea.KeyRunes:
		m.insert(msg.Runes...)
	}
	return m, nil
}

func (m *Model) insert(r ...rune) {
	m.buf = append(m.buf, r...)
	m.edited()
}

func (m *Model) edited() {
	m.output, m.failed, m.solvable = "", false, true
}

func (m *Model) solve() {
	rep, _ := m.session.Solve(string(m.buf))
	m.output = m.session.Render(rep)
	m.failed = rep.Err != nil
	m.solvable = false
}

func (m Model) Text() string   { return string(m.buf) }
func (m Model) Output() string { return m.output }
func (m Model) Failed() bool   { return m.failed }
func (m Model) Solvable() bool { return m.solvable }

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := HeaderStyle.Width(m.width).Render(title)
	body := actionLabels.Replace(string(m.buf)) + Cursor.Render("█") + m.renderOutput()

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.tail(body, m.height-lipgloss.Height(header)-2))
	b.WriteString("\n\n")
	b.WriteString(m.hints())
	return b.String()
}

// tail keeps the last n lines of s so the cursor and the latest output
// stay on screen. n <= 0 means the window size is not known yet.
func (m Model) tail(s string, n int) string {
	if m.height <= 0 || n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

func (m Model) renderOutput() string {
	if m.output == "" {
		return ""
	}
	if m.failed {
		return ErrorStyle.Render(m.output)
	}
	lines := strings.Split(m.output, "\n")
	for i, l := range lines {
		if l == format.SolutionTitle {
			lines[i] = SolutionStyle.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) hints() string {
	solve := KeyHint.Render("ctrl+s solve")
	if !m.solvable {
		solve = KeyDisabled.Render("ctrl+s solve")
	}
	return strings.Join([]string{
		KeyHint.Render("ctrl+l clear"),
		solve,
		KeyHint.Render("f1 help"),
		KeyHint.Render("esc quit"),
	}, "  ")
}

// Run starts the editor on the terminal's alternate screen.
func Run(s *workbench.Session) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
