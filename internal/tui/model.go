package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	serrors "github.com/idilsaglam/sorter/internal/errors"
	"github.com/idilsaglam/sorter/internal/model"
	"github.com/idilsaglam/sorter/internal/ui"
)

// Intents is the part of the store the board drives.
type Intents interface {
	Snapshot() model.Snapshot
	Add(model.Item) (model.Snapshot, error)
	Remove(model.Item) (model.Snapshot, error)
	UndoLast() model.Snapshot
}

// SnapshotMsg delivers a snapshot produced outside Update, e.g. by a tick.
type SnapshotMsg struct {
	Snapshot model.Snapshot
}

type pane int

const (
	paneMain pane = iota
	paneFruits
	paneVegetables
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneFruits:
		return "Fruits"
	case paneVegetables:
		return "Vegetables"
	}
	return "Main"
}

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Name }

// itemDelegate renders one item per line; the cursor only shows in the
// focused pane.
type itemDelegate struct{ focused bool }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	prefix := "  "
	label := ui.ItemLabel(it.Item)
	if d.focused && index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor + " ")
	}
	fmt.Fprint(w, prefix+label)
}

// Model is the bubbletea model for the sorting board.
type Model struct {
	store  Intents
	log    *zap.Logger
	snap   model.Snapshot
	lists  [paneCount]list.Model
	focus  pane
	keys   keyMap
	help   help.Model
	status string
	err    string

	width, height int
	quitting      bool
}

// New creates the board model showing the store's current snapshot.
func New(st Intents, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		store:  st,
		log:    log,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	for p := pane(0); p < paneCount; p++ {
		l := list.New(nil, itemDelegate{focused: p == paneMain}, 0, 0)
		l.SetShowTitle(false)
		l.SetShowHelp(false)
		l.SetShowStatusBar(false)
		l.SetShowPagination(true)
		l.SetFilteringEnabled(false)
		l.DisableQuitKeybindings()
		l.Styles.PaginationStyle = ui.Current().Muted
		m.lists[p] = l
	}
	m.apply(st.Snapshot())
	m.resize()
	return m
}

// Snapshot returns the snapshot currently rendered.
func (m *Model) Snapshot() model.Snapshot { return m.snap }

// Init is the Bubble Tea initialization function.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case SnapshotMsg:
		m.apply(msg.Snapshot)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % paneCount)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus((m.focus + paneCount - 1) % paneCount)
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.selectCurrent()
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			m.undo()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.focus], cmd = m.lists[m.focus].Update(msg)
	return m, cmd
}

// selectCurrent sorts the highlighted main item into its bucket, or
// returns the highlighted bucket item to main.
func (m *Model) selectCurrent() {
	sel, ok := m.lists[m.focus].SelectedItem().(listItem)
	if !ok {
		return
	}
	m.err = ""
	var (
		snap model.Snapshot
		err  error
	)
	if m.focus == paneMain {
		snap, err = m.store.Add(sel.Item)
		m.status = fmt.Sprintf("%s → %s", sel.Name, bucketTitle(sel.Category))
	} else {
		snap, err = m.store.Remove(sel.Item)
		m.status = fmt.Sprintf("%s → Main", sel.Name)
	}
	if err != nil {
		m.status = ""
		m.err = err.Error()
		if !serrors.Is(err, serrors.ErrNotFound) {
			m.log.Warn("intent rejected", zap.String("item", sel.Name), zap.Error(err))
		}
		return
	}
	m.apply(snap)
}

// undo is the keyboard stand-in for clicking a bucket's background.
func (m *Model) undo() {
	before := m.snap
	snap := m.store.UndoLast()
	m.err = ""
	m.status = "nothing to undo"
	if snap.Bucketed() < before.Bucketed() && len(snap.Main) > 0 {
		m.status = fmt.Sprintf("undid %s", snap.Main[len(snap.Main)-1].Name)
	}
	m.apply(snap)
}

// apply renders snap unless a newer one is already shown.
func (m *Model) apply(snap model.Snapshot) {
	if snap.Seq < m.snap.Seq {
		return
	}
	m.snap = snap
	for p, items := range [paneCount][]model.Item{snap.Main, snap.Fruits, snap.Vegetables} {
		li := make([]list.Item, len(items))
		for i, it := range items {
			li[i] = listItem{it}
		}
		idx := m.lists[p].Index()
		m.lists[p].SetItems(li)
		if idx >= len(li) {
			idx = len(li) - 1
		}
		if idx >= 0 {
			m.lists[p].Select(idx)
		}
	}
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	for i := range m.lists {
		m.lists[i].SetDelegate(itemDelegate{focused: pane(i) == p})
	}
}

func (m *Model) resize() {
	paneWidth := (m.width - 2) / int(paneCount)
	if paneWidth < 14 {
		paneWidth = 14
	}
	chrome := 7
	if m.help.ShowAll {
		chrome += 3
	}
	listHeight := m.height - chrome
	if listHeight < 3 {
		listHeight = 3
	}
	for i := range m.lists {
		m.lists[i].SetSize(paneWidth-4, listHeight)
	}
}

// View renders the board.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	t := ui.Current()

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		t.Title.Render("Sorter"),
		t.Accent.Render("Main"), len(m.snap.Main),
		t.Success.Render("Fruits"), len(m.snap.Fruits),
		t.Success.Render("Vegetables"), len(m.snap.Vegetables),
		ui.ProgressBar(m.snap.Bucketed(), m.snap.Len(), 16),
	)

	panes := make([]string, paneCount)
	for p := pane(0); p < paneCount; p++ {
		color := t.BorderColor
		title := t.Muted.Render(p.title())
		if p == m.focus {
			color = t.FocusColor
			title = t.Title.Render(p.title())
		}
		body := m.lists[p].View()
		if len(m.lists[p].Items()) == 0 {
			body = t.Muted.Render("(empty)")
		}
		panes[p] = lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(color).
			Padding(0, 1).
			Width(m.lists[p].Width() + 2).
			Render(title + "\n" + body)
	}

	status := t.Muted.Render(m.status)
	if m.err != "" {
		status = t.Error.Render(m.err)
	}

	return strings.Join([]string{
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		status,
		m.help.View(m.keys),
	}, "\n")
}

func bucketTitle(c model.Category) string {
	if b, err := model.BucketFor(c); err == nil && b == model.Vegetables {
		return "Vegetables"
	}
	return "Fruits"
}
