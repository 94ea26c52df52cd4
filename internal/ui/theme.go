package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + borders.
// All UI helpers pull from the current theme.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected                                     lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.Color
	FocusColor  lipgloss.Color

	SymOK, SymFail, SymTimer, SymCursor string
	BarFull, BarEmpty                   string
}

var (
	mu      sync.RWMutex
	current = classic()
)

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		FocusColor:  lipgloss.Color("12"),
		SymOK:       "✔",
		SymFail:     "✖",
		SymTimer:    "⏱",
		SymCursor:   ">",
		BarFull:     "█",
		BarEmpty:    "░",
	}
}

// SetTheme switches the current theme. Unknown names fall back to classic.
func SetTheme(name string) {
	var t Theme
	switch strings.ToLower(name) {
	case "neon":
		t = classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BorderColor = lipgloss.Color("13")
		t.FocusColor = lipgloss.Color("14")
		t.SymCursor = "▸"
	case "mono":
		plain := lipgloss.NewStyle()
		t = Theme{
			Name:        "mono",
			Title:       plain,
			Muted:       plain,
			Accent:      plain,
			Success:     plain,
			Error:       plain,
			Pending:     plain,
			Selected:    plain.Reverse(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color(""),
			FocusColor:  lipgloss.Color(""),
			SymOK:       "ok",
			SymFail:     "x",
			SymTimer:    "t",
			SymCursor:   ">",
			BarFull:     "#",
			BarEmpty:    "-",
		}
	default:
		t = classic()
	}
	mu.Lock()
	current = t
	mu.Unlock()
}

// Current returns the active theme.
func Current() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
