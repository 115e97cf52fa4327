package main

import (
	"fmt"
	"math/bits"
	"strings"

	"qstateprep/pkg/stateprep"
)

// Preparers selectable from the menu. The names also label exports.
const (
	preparerMottonen  = "mottonen"
	preparerBasis     = "basis"
	preparerArbitrary = "arbitrary"
)

// preset fills the input panel with a target for n wires and selects the
// preparer that consumes it.
type preset struct {
	name     string
	preparer string
	input    func(n int) string
}

// menuItem represents a single choice in the menu.
type menuItem struct {
	name     string
	symbol   string
	preparer string // set for preparer items
	preset   int    // index into presets, -1 for preparer items
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

var presets = []preset{
	{name: "GHZ", preparer: preparerMottonen, input: ghzInput},
	{name: "W state", preparer: preparerMottonen, input: wInput},
	{name: "Uniform", preparer: preparerMottonen, input: uniformInput},
	{name: "Phased", preparer: preparerMottonen, input: phasedInput},
	{name: "All ones", preparer: preparerBasis, input: allOnesInput},
	{name: "Ansatz GHZ", preparer: preparerArbitrary, input: ansatzGHZInput},
}

// stateMenu defines the menu categories and items.
var stateMenu = []menuCategory{
	{
		name: "Preparer",
		items: []menuItem{
			{name: "Mottonen", symbol: "RY·RZ", preparer: preparerMottonen, preset: -1},
			{name: "Basis state", symbol: "X", preparer: preparerBasis, preset: -1},
			{name: "Pauli ansatz", symbol: "P·XY", preparer: preparerArbitrary, preset: -1},
		},
	},
	{
		name: "Presets",
		items: []menuItem{
			{name: "GHZ", symbol: "|0..0⟩+|1..1⟩", preset: 0},
			{name: "W state", symbol: "Σ|0..1..0⟩", preset: 1},
			{name: "Uniform", symbol: "H⊗n|0⟩", preset: 2},
			{name: "Phased", symbol: "iᵏ", preset: 3},
			{name: "All ones", symbol: "|1..1⟩", preset: 4},
			{name: "Ansatz GHZ", symbol: "X..XY", preset: 5},
		},
	},
}

// ghzInput is (|0..0⟩ + |1..1⟩)/√2.
func ghzInput(n int) string {
	entries := zeros(1 << n)
	entries[0] = "sqrt(2)/2"
	entries[len(entries)-1] = "sqrt(2)/2"
	return bracket(entries)
}

// wInput spreads equal weight over the states with a single 1.
func wInput(n int) string {
	entries := zeros(1 << n)
	amp := fmt.Sprintf("1/sqrt(%d)", n)
	for i := range entries {
		if bits.OnesCount(uint(i)) == 1 {
			entries[i] = amp
		}
	}
	return bracket(entries)
}

func uniformInput(n int) string {
	entries := make([]string, 1<<n)
	for i := range entries {
		entries[i] = fmt.Sprintf("1/sqrt(%d)", 1<<n)
	}
	return bracket(entries)
}

// phasedInput has equal magnitudes and the phase i^k on basis state k, so
// the RZ pass is exercised.
func phasedInput(n int) string {
	phases := []string{"", "i", "-", "-i"}
	entries := make([]string, 1<<n)
	for k := range entries {
		p := phases[k%4]
		if p == "" || p == "-" {
			p += "1"
		}
		entries[k] = fmt.Sprintf("%s/sqrt(%d)", p, 1<<n)
	}
	return bracket(entries)
}

func allOnesInput(n int) string {
	entries := make([]string, n)
	for i := range entries {
		entries[i] = "1"
	}
	return bracket(entries)
}

// ansatzGHZInput sets the weight of the last word, X..XY, to pi/2.
func ansatzGHZInput(n int) string {
	entries := zeros(stateprep.NumWeights(n))
	entries[len(entries)-1] = "pi/2"
	return bracket(entries)
}

func zeros(n int) []string {
	entries := make([]string, n)
	for i := range entries {
		entries[i] = "0"
	}
	return entries
}

func bracket(entries []string) string {
	return "[" + strings.Join(entries, ", ") + "]"
}

// renderMenu renders the floating preparer/preset popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Target State"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range stateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(stateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 36)))
	sb.WriteString("\n")

	cat := stateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.preparer != "" && item.preparer == m.preparer {
			sb.WriteString(dimStyle.Render(" (active)"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Tab  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
