// Package debugger provides an interactive single-step TUI for the SM83
// core: one step per keypress, with the register file, flag nibble and a
// page of surrounding memory redrawn after every step.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/richardwooding/sm83/internal/cpu"
)

// Memory is the view of the bus the debugger needs to render a page of
// surrounding memory; cpu.Memory satisfies it.
type Memory interface {
	Read(addr uint16) uint8
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type model struct {
	core *cpu.CPU
	mem  Memory

	prevPC uint16
	err    error
	quit   bool
	dump   bool
}

// Init performs no initial command; the core is already wired and reset
// by the caller before the program starts.
func (m model) Init() tea.Cmd {
	return nil
}

// Update advances the core by one step on space or "j", quits on "q", and
// toggles a verbose go-spew register dump on "d".
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case "d":
		m.dump = !m.dump
	case " ", "j":
		m.prevPC = m.core.GetPC()
		if _, err := m.core.Step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of memory as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X | ", start)
	pc := m.core.GetPC()
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		byteStr := fmt.Sprintf("%02X", m.mem.Read(addr))
		if addr == pc {
			b.WriteString(pcStyle.Render("[" + byteStr + "]"))
		} else {
			b.WriteString(" " + byteStr + " ")
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m model) pageTable() string {
	pc := m.core.GetPC()
	base := pc &^ 0x0F
	lines := []string{headerStyle.Render("addr | 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F")}
	for row := -1; row <= 2; row++ {
		start := base + uint16(row*16) //nolint:gosec // intentional wraparound for the page above PC's page
		lines = append(lines, m.renderPage(start))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.core.GetRegisters()
	flags := "znhc"
	set := []bool{r.ZeroFlag(), r.SubtractFlag(), r.HalfCarryFlag(), r.CarryFlag()}
	var shown strings.Builder
	for i, name := range flags {
		if set[i] {
			shown.WriteRune(name - 32) // uppercase when set
		} else {
			shown.WriteRune('-')
		}
	}

	halted := ""
	if m.core.IsHalted() {
		halted = " (halted)"
	}

	return fmt.Sprintf(
		"PC: %04X (prev %04X)%s\nA:  %02X    F: %02X [%s]\nB:  %02X    C: %02X\nD:  %02X    E: %02X\nH:  %02X    L: %02X\nSP: %04X\ncycles: %d\n",
		r.PC, m.prevPC, halted,
		r.A, r.F, shown.String(),
		r.B, r.C,
		r.D, r.E,
		r.H, r.L,
		r.SP, m.core.Cycles,
	)
}

// View renders the page table, the register/flag readout, and (when
// toggled with "d") a raw go-spew dump of the full register file.
func (m model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("fault: %v\n", m.err))
	}

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   "+m.status()),
		headerStyle.Render("space/j: step   d: dump   q: quit"),
	}
	if m.dump {
		r := m.core.GetRegisters()
		sections = append(sections, spew.Sdump(r))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the interactive debugger against an already-wired core and
// its memory, blocking until the user quits.
func Run(core *cpu.CPU, mem Memory) error {
	p := tea.NewProgram(model{core: core, mem: mem})
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("debugger: %w", err)
	}

	if m, ok := finalModel.(model); ok && m.err != nil {
		return fmt.Errorf("debugger: %w", m.err)
	}
	return nil
}
