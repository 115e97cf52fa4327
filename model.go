package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qstateprep/internal/config"
	"qstateprep/pkg/circuit"
	"qstateprep/pkg/sim"
	"qstateprep/pkg/stateprep"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusInput
	focusMenu
)

// Export file names, written to the configured export directory.
const (
	qasmFileName    = "stateprep.qasm"
	msgpackFileName = "stateprep.msgpack"
)

// synthesisStats summarizes the last synthesized sequence.
type synthesisStats struct {
	counts    map[string]int
	gates     int
	depth     int
	hasTarget bool
	fidelity  float64
	top       []sim.BasisState // most probable basis states of the prepared state
}

// Model represents the TUI application state.
type Model struct {
	cfg      *config.Config
	log      zerolog.Logger
	preparer string
	numWires int
	preset   int // last applied preset, -1 after manual edits

	seq     *circuit.Sequence // synthesized sequence, the single source of truth
	dag     *circuit.DAG      // layering of the displayed sequence
	qasm    string
	stats   synthesisStats
	err     error
	lowered bool // show Pauli rotations as their {H, RX, CX, RZ} lowering

	input     textarea.Model
	lastInput string

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	focus       focus
	statusMsg   string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int
}

func initialModel(cfg *config.Config, log zerolog.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Amplitudes, bits or weights, e.g. [1/2, 1/2, 1/2, 1/2]"
	ta.SetWidth(40)
	ta.SetHeight(4)
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	m := Model{
		cfg:      cfg,
		log:      log,
		numWires: cfg.Wires,
		input:    ta,
		focus:    focusCircuit,
	}
	m.applyPreset(0)
	return m
}

// wires returns the register labels 0..numWires-1.
func (m *Model) wires() []int {
	wires := make([]int, m.numWires)
	for i := range wires {
		wires[i] = i
	}
	return wires
}

// applyPreset fills the input with a preset for the current register size
// and rebuilds.
func (m *Model) applyPreset(idx int) {
	p := presets[idx]
	m.preset = idx
	m.preparer = p.preparer
	m.input.SetValue(p.input(m.numWires))
	m.rebuild()
}

// rebuild re-synthesizes the sequence from the input panel and refreshes
// every derived view.
func (m *Model) rebuild() {
	m.lastInput = m.input.Value()
	m.seq = circuit.NewSequence()
	m.stats = synthesisStats{}

	seq, target, err := m.synthesize(m.lastInput)
	if err != nil {
		m.err = err
		m.dag = circuit.NewDAG(m.seq)
		m.qasm = ""
		m.cursorStep = 0
		m.log.Warn().Err(err).Str("preparer", m.preparer).Msg("synthesis failed")
		return
	}
	m.err = nil
	m.seq = seq
	m.dag = circuit.NewDAG(seq)

	display := seq
	if m.lowered {
		if display, err = circuit.Lower(seq); err != nil {
			m.err = err
			return
		}
		m.dag = circuit.NewDAG(display)
	}
	m.cursorStep = min(m.cursorStep, m.dag.MaxStep())

	if m.qasm, err = circuit.ToQASM(seq, m.numWires); err != nil {
		m.err = err
		return
	}

	m.stats.counts = display.Counts()
	m.stats.gates = display.Len()
	m.stats.depth = m.dag.Depth()

	state, err := sim.Run(seq, m.numWires)
	if err != nil {
		m.err = err
		return
	}
	if target != nil {
		m.stats.hasTarget = true
		m.stats.fidelity = sim.Fidelity(target, state.Amplitudes)
	}
	top := state.BasisStates()
	sort.SliceStable(top, func(i, j int) bool { return top[i].Prob > top[j].Prob })
	m.stats.top = top[:min(len(top), 4)]

	m.log.Info().
		Str("preparer", m.preparer).
		Int("wires", m.numWires).
		Int("gates", m.stats.gates).
		Int("depth", m.stats.depth).
		Msg("sequence synthesized")
}

// synthesize runs the active preparer on the parsed input. target is the
// state the sequence should reach, or nil when the preparer has none.
func (m *Model) synthesize(text string) (*circuit.Sequence, []complex128, error) {
	tensor, err := parseTensor(text)
	if err != nil {
		return nil, nil, err
	}
	opts := append(m.cfg.Options(), stateprep.WithLogger(m.log))

	switch m.preparer {
	case preparerMottonen:
		seq, err := stateprep.MottonenTensor(tensor, m.wires(), opts...)
		return seq, tensor.Data(), err
	case preparerBasis:
		seq, err := stateprep.BasisStateTensor(tensor, m.wires())
		if err != nil {
			return nil, nil, err
		}
		index := 0
		for _, v := range tensor.Data() {
			index = index<<1 | int(real(v))
		}
		target := make([]complex128, 1<<m.numWires)
		target[index] = 1
		return seq, target, nil
	case preparerArbitrary:
		seq, err := stateprep.ArbitraryTensor(tensor, m.wires(), opts...)
		return seq, nil, err
	}
	return nil, nil, fmt.Errorf("unknown preparer %q", m.preparer)
}

func (m *Model) resize(n int) {
	if n < 1 || n > config.MaxExplorerWires {
		return
	}
	m.numWires = n
	m.cursorQubit = min(m.cursorQubit, n-1)
	if m.preset >= 0 {
		m.applyPreset(m.preset)
		return
	}
	m.rebuild()
}

// saveQASM writes the QASM export of the current sequence.
func (m *Model) saveQASM() {
	if m.err != nil {
		m.statusMsg = "Nothing to save: " + m.err.Error()
		return
	}
	path := filepath.Join(m.cfg.ExportDir, qasmFileName)
	if err := os.WriteFile(path, []byte(m.qasm), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		m.log.Error().Err(err).Str("path", path).Msg("qasm export failed")
		return
	}
	m.statusMsg = "Saved " + path
	m.log.Info().Str("path", path).Msg("qasm exported")
}

// saveEnvelope writes the msgpack export of the current sequence.
func (m *Model) saveEnvelope() {
	if m.err != nil {
		m.statusMsg = "Nothing to save: " + m.err.Error()
		return
	}
	env := circuit.NewEnvelope(m.preparer, m.seq, m.numWires)
	data, err := circuit.MarshalEnvelope(env)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Encode error: %v", err)
		return
	}
	path := filepath.Join(m.cfg.ExportDir, msgpackFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		m.log.Error().Err(err).Str("path", path).Msg("envelope export failed")
		return
	}
	m.statusMsg = "Saved " + path
	m.log.Info().Str("path", path).Str("id", env.ID).Msg("envelope exported")
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width/2-6, 20))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusInput
				cmds = append(cmds, m.input.Focus())
			case "a", "m":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "ctrl+s":
				m.saveQASM()
			case "ctrl+b":
				m.saveEnvelope()
			case "ctrl+r":
				m.applyPreset(max(m.preset, 0))
			case "L":
				m.lowered = !m.lowered
				m.rebuild()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.numWires-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.dag.MaxStep() {
					m.cursorStep++
				}
			case "+", "=":
				m.resize(m.numWires + 1)
			case "-":
				m.resize(m.numWires - 1)
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(stateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(stateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := stateMenu[m.menuCat].items[m.menuItem]
				if item.preset >= 0 {
					m.applyPreset(item.preset)
				} else {
					m.preparer = item.preparer
					m.preset = -1
					m.rebuild()
				}
				m.focus = focusCircuit
			}

		case focusInput:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.input.Blur()
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				if m.input.Value() != m.lastInput {
					m.preset = -1
					m.rebuild()
				}
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return renderBanner() + "\n  Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 4
	bottomHeight := 10
	circuitHeight := max(m.height-controlsHeight-bottomHeight-4, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	inputPanel := m.renderInputPanel(m.width/2-2, bottomHeight)
	statsPanel := m.renderStatsPanel(m.width-m.width/2-4, bottomHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	midRow := lipgloss.JoinHorizontal(lipgloss.Top, inputPanel, statsPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, midRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}

// statusLine describes the cursor cell and any transient message.
func (m Model) statusLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Step %d, Wire %d", m.cursorStep, m.cursorQubit)
	if node := m.dag.NodeAt(m.cursorStep, m.cursorQubit); node != nil {
		fmt.Fprintf(&sb, "  │  %s", node.Gate)
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", m.statusMsg)
	}
	return sb.String()
}
