package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/sorter/internal/model"
)

// ProgressBar renders a bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	t := Current()
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// OK prints a success line.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// ItemLabel renders an item name, with its remaining ticks when bucketed.
func ItemLabel(it model.Item) string {
	if !it.Bucketed() {
		return it.Name
	}
	t := Current()
	return fmt.Sprintf("%s %s", it.Name, t.Pending.Render(fmt.Sprintf("%s%d", t.SymTimer, it.TTL)))
}

// Board renders the three lists side by side, the same layout the TUI uses
// without focus or selection.
func Board(s model.Snapshot) string {
	t := Current()
	col := func(title string, items []model.Item) string {
		lines := []string{t.Title.Render(title), ""}
		if len(items) == 0 {
			lines = append(lines, t.Muted.Render("(empty)"))
		}
		for _, it := range items {
			lines = append(lines, ItemLabel(it))
		}
		return lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.BorderColor).
			Padding(0, 1).
			Width(22).
			Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		col("Main", s.Main),
		col("Fruits", s.Fruits),
		col("Vegetables", s.Vegetables),
	)
}
