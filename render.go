package main

import (
	"fmt"
	"slices"
	"strings"

	figure "github.com/common-nighthawk/go-figure"

	"qstateprep/pkg/circuit"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// renderBanner renders the program name with the built-in "small" figlet font.
func renderBanner() string {
	fig := figure.NewFigure("qstateprep", "small", true)
	return titleStyle.Render(strings.Join(fig.Slicify(), "\n"))
}

// gateDisplayName returns the short name drawn for a gate on one wire.
// Pauli rotations show the word letter that acts on that wire.
func gateDisplayName(g circuit.Gate, wire int) string {
	if g.Type == circuit.TypePauliRot {
		if i := slices.Index(g.Wires, wire); i >= 0 && i < len(g.Word) {
			return "P" + string(g.Word[i])
		}
		return "P"
	}
	return g.Type
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *circuit.Gate
	label       string
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, wire).
func getCellInfo(dag *circuit.DAG, step, wire int) cellInfo {
	var info cellInfo

	if node := dag.NodeAt(step, wire); node != nil {
		g := node.Gate
		info.gate = &g
		info.isControl = g.Control == wire
		info.isTarget = g.Control >= 0 && g.Target == wire
		info.label = gateDisplayName(g, wire)
	}

	// Vertical connections for gates spanning several wires
	for _, node := range dag.NodesAtStep(step) {
		qubits := node.Gate.Qubits()
		if len(qubits) < 2 {
			continue
		}
		lo, hi := slices.Min(qubits), slices.Max(qubits)
		if wire < lo || wire > hi {
			continue
		}
		if wire > lo {
			info.vertAbove = true
		}
		if wire < hi {
			info.vertBelow = true
		}
		if wire > lo && wire < hi && info.gate == nil {
			info.passThrough = true
		}
	}

	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	if hl == hlCursor {
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = cursorBoxStyle.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = cursorBoxStyle.Render("╚" + strings.Repeat("═", innerW) + "╝")
		side := cursorBoxStyle.Render("║")

		switch {
		case info.gate != nil && info.isControl:
			mid = side + strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR) + side
		case info.gate != nil && info.isTarget:
			mid = side + strings.Repeat("─", dashL) + gateStyle.Render("⊕") + strings.Repeat("─", dashR) + side
		case info.gate != nil:
			mid = side + "─┤" + gateStyle.Render(padCenter(info.label, gateNameW)) + "├─" + side
		case info.passThrough:
			mid = side + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + side
		default:
			mid = side + strings.Repeat("─", innerW) + side
		}
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top = emptyRow
	if info.vertAbove {
		top = vertRow
	}
	bot = emptyRow
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.gate != nil && (info.isControl || info.isTarget):
		sym := "●"
		if info.isTarget {
			sym = "⊕"
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.label, gateNameW)
		edge := strings.Repeat("─", gateNameW)
		topEdge, botEdge := edge, edge
		// Pauli rotations span wires; mark the joins on the box edges.
		if info.vertAbove {
			topEdge = edge[:len("─")*(gateNameW/2)] + "┴" + edge[len("─")*(gateNameW/2+1):]
		}
		if info.vertBelow {
			botEdge = edge[:len("─")*(gateNameW/2)] + "┬" + edge[len("─")*(gateNameW/2+1):]
		}

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+topEdge+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+botEdge+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	default:
		mid = strings.Repeat("─", cellW)
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := fmt.Sprintf("Circuit · %s", m.preparer)
	if m.lowered {
		title += " (lowered)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	displaySteps := min(maxSteps, m.dag.MaxStep()+1-startStep)

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each wire as 3 lines
	for wire := range m.numWires {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", wire)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			info := getCellInfo(m.dag, step, wire)

			hl := hlNone
			if step == m.cursorStep && wire == m.cursorQubit && m.focus == focusCircuit {
				hl = hlCursor
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	sb.WriteString("\n  ")
	sb.WriteString(m.statusLine())

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the read-only QASM export.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("OpenQASM 2.0"))
	sb.WriteString("\n\n")

	lines := strings.Split(strings.TrimRight(m.qasm, "\n"), "\n")
	room := max(height-4, 1)
	if len(lines) > room {
		hidden := len(lines) - room + 1
		lines = append(lines[:room-1], dimStyle.Render(fmt.Sprintf("… %d more lines", hidden)))
	}
	sb.WriteString(strings.Join(lines, "\n"))

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderInputPanel renders the target editor.
func (m Model) renderInputPanel(width, height int) string {
	var sb strings.Builder

	title := "Target"
	switch m.preparer {
	case preparerMottonen:
		title += fmt.Sprintf(" · %d amplitudes", 1<<m.numWires)
	case preparerBasis:
		title += fmt.Sprintf(" · %d bits", m.numWires)
	case preparerArbitrary:
		title += fmt.Sprintf(" · %d weights", 2*((1<<m.numWires)-1))
	}
	if m.focus == focusInput {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())

	return inputStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatsPanel renders gate counts, depth and simulation results.
func (m Model) renderStatsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Statistics"))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
		return statsStyle.Width(width).Height(height).Render(sb.String())
	}

	types := make([]string, 0, len(m.stats.counts))
	for t := range m.stats.counts {
		types = append(types, t)
	}
	slices.Sort(types)
	counts := make([]string, len(types))
	for i, t := range types {
		counts[i] = fmt.Sprintf("%s %d", t, m.stats.counts[t])
	}

	fmt.Fprintf(&sb, "Gates: %d   Depth: %d\n", m.stats.gates, m.stats.depth)
	if len(counts) > 0 {
		sb.WriteString(dimStyle.Render(strings.Join(counts, "  ")))
		sb.WriteString("\n")
	}
	if m.stats.hasTarget {
		fmt.Fprintf(&sb, "Fidelity: %.9f\n", m.stats.fidelity)
	}
	for _, bs := range m.stats.top {
		fmt.Fprintf(&sb, "|%0*b⟩ %s  p=%.4f\n", m.numWires, bs.Index, formatComplex(bs.Amplitude), bs.Prob)
	}

	return statsStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Wire  ←→/hl Step  +/- Wires  L Lower")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Preparer/preset\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Edit target  ^R Reset  ^S Save QASM  ^B Save msgpack  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// isEscEnd reports whether r terminates an ANSI escape sequence.
func isEscEnd(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	col, i := 0, 0

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				prefix.WriteRune(r)
				i++
				if r != '\x1b' && r != '[' && isEscEnd(r) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}

	// Pad prefix if bg line is shorter than x
	for ; col < x; col++ {
		prefix.WriteRune(' ')
	}

	// Skip over ovWidth visible columns in the background
	for skipped := 0; i < len(runes) && skipped < ovWidth; {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && isEscEnd(r) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	return prefix.String() + overlay + string(runes[i:])
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscEnd(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
