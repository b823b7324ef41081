package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linsolve/internal/config"
	"github.com/san-kum/linsolve/internal/format"
	"github.com/san-kum/linsolve/internal/workbench"
)

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		switch r {
		case '\n':
			m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
		case ' ':
			m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	return m
}

var _ = Describe("Editor", func() {
	var m Model

	BeforeEach(func() {
		s, err := workbench.New(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		m = NewModel(s)
	})

	It("starts with the help text and solve disabled", func() {
		Expect(m.Text()).To(Equal(format.Intro))
		Expect(m.Solvable()).To(BeFalse())
		Expect(m.View()).To(ContainSubstring("Linear System Solver"))
	})

	It("clears the buffer", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		Expect(m.Text()).To(BeEmpty())
		Expect(m.Solvable()).To(BeFalse())
	})

	It("solves typed input", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		m = typeText(m, "3,2,-4,3\n2,3,3,15\n5,-3,1,14")
		Expect(m.Solvable()).To(BeTrue())

		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		Expect(m.Failed()).To(BeFalse())
		Expect(m.Output()).To(Equal(format.SolutionBlock([]float64{3, 1, 2})))
		Expect(m.Solvable()).To(BeFalse())
		Expect(m.View()).To(ContainSubstring(" x[  2] :   2.0000000"))
	})

	It("ignores solve until the buffer changes", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		Expect(m.Output()).To(BeEmpty())
	})

	It("reports text without numbers", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		m = typeText(m, "hello world")
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		Expect(m.Failed()).To(BeTrue())
		Expect(m.Output()).To(ContainSubstring("No Numeric Value Found In Buffer"))

		// the session stays usable
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		m = typeText(m, "2 4")
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		Expect(m.Failed()).To(BeFalse())
		Expect(m.Output()).To(ContainSubstring(" x[  0] :   2.0000000"))
	})

	It("drops stale output when editing", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		m = typeText(m, "2 4")
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
		Expect(m.Output()).NotTo(BeEmpty())

		m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
		Expect(m.Text()).To(Equal("2 "))
		Expect(m.Output()).To(BeEmpty())
		Expect(m.Solvable()).To(BeTrue())
	})

	It("restores the help text", func() {
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL}, tea.KeyMsg{Type: tea.KeyF1})
		Expect(m.Text()).To(Equal(format.Intro))
	})

	It("quits", func() {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		Expect(cmd).NotTo(BeNil())
		Expect(next.(Model).View()).To(BeEmpty())
	})

	It("tracks the window size", func() {
		m = press(m, tea.WindowSizeMsg{Width: 120, Height: 40})
		Expect(m.width).To(Equal(120))
		Expect(m.height).To(Equal(40))
	})

	It("keeps the end of a long buffer in view", func() {
		m = press(m, tea.WindowSizeMsg{Width: 60, Height: 10})
		m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
		for i := 1; i <= 20; i++ {
			m = typeText(m, fmt.Sprintf("line%02d\n", i))
		}
		m = typeText(m, "last")

		view := m.View()
		Expect(strings.Count(view, "\n") + 1).To(BeNumerically("<=", 10))
		Expect(view).To(ContainSubstring("Linear System Solver"))
		Expect(view).To(ContainSubstring("line20"))
		Expect(view).To(ContainSubstring("last"))
		Expect(view).NotTo(ContainSubstring("line01"))
	})

	It("shows the whole buffer before the window size is known", func() {
		Expect(m.View()).To(ContainSubstring("Click"))
		Expect(m.View()).To(ContainSubstring("x[  2]"))
	})
})
