package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sorter/internal/model"
	"github.com/idilsaglam/sorter/internal/store"
)

func newBoard(t *testing.T) (*Model, *store.Store) {
	t.Helper()
	st, err := store.New([]model.Item{
		{Name: "Apple", Category: model.Fruit},
		{Name: "Carrot", Category: model.Vegetable},
		{Name: "Banana", Category: model.Fruit},
	})
	require.NoError(t, err)
	return New(st, nil), st
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func press(m *Model, msgs ...tea.Msg) *Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func TestNewShowsSeed(t *testing.T) {
	m, _ := newBoard(t)
	assert.Equal(t, []string{"Apple", "Carrot", "Banana"}, model.Names(m.Snapshot().Main))
	assert.Equal(t, paneMain, m.focus)
	assert.Nil(t, m.Init())
}

func TestEnterOnMainAddsItem(t *testing.T) {
	m, st := newBoard(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := st.Snapshot()
	assert.Equal(t, []string{"Carrot", "Banana"}, model.Names(snap.Main))
	assert.Equal(t, []string{"Apple"}, model.Names(snap.Fruits))
	assert.Equal(t, snap, m.Snapshot())
	assert.Contains(t, m.status, "Apple")

	// cursor stays in range and now points at Carrot
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"Carrot"}, model.Names(st.Snapshot().Vegetables))
}

func TestEnterOnBucketRemovesItem(t *testing.T) {
	m, st := newBoard(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, paneFruits, m.focus)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, st.Snapshot().Fruits)
	assert.Equal(t, []string{"Carrot", "Banana", "Apple"}, model.Names(m.Snapshot().Main))
	assert.Empty(t, st.History())
}

func TestUndoKey(t *testing.T) {
	m, st := newBoard(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"Apple", "Carrot"}, st.History())

	m = press(m, keyRune('u'))
	assert.Equal(t, []string{"Apple"}, st.History())
	assert.Equal(t, "undid Carrot", m.status)

	m = press(m, keyRune('u'), keyRune('u'))
	assert.Equal(t, "nothing to undo", m.status)
	assert.Len(t, m.Snapshot().Main, 3)
}

func TestFocusCycles(t *testing.T) {
	m, _ := newBoard(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, paneVegetables, m.focus)
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, paneMain, m.focus)
}

func TestSelectOnEmptyPaneIsNoop(t *testing.T) {
	m, st := newBoard(t)
	before := st.Snapshot()
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, before, st.Snapshot())
	assert.Empty(t, m.err)
}

func TestSnapshotMsgIgnoresStaleSnapshots(t *testing.T) {
	m, st := newBoard(t)
	stale := st.Snapshot()
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	fresh := m.Snapshot()

	m = press(m, SnapshotMsg{Snapshot: stale})
	assert.Equal(t, fresh, m.Snapshot())

	ticked := st.Tick()
	m = press(m, SnapshotMsg{Snapshot: ticked})
	require.Len(t, m.Snapshot().Fruits, 1)
	assert.Equal(t, 2, m.Snapshot().Fruits[0].TTL)
}

func TestQuit(t *testing.T) {
	m, _ := newBoard(t)
	next, cmd := m.Update(keyRune('q'))
	assert.True(t, next.(*Model).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.(*Model).View())
}

func TestViewRendersPanes(t *testing.T) {
	m, _ := newBoard(t)
	m = press(m, tea.WindowSizeMsg{Width: 100, Height: 30}, tea.KeyMsg{Type: tea.KeyEnter})
	out := m.View()
	for _, want := range []string{"Sorter", "Main", "Fruits", "Vegetables", "Carrot", "Apple", "1/3"} {
		assert.Contains(t, out, want)
	}
}

func TestForwarderSendsSnapshot(t *testing.T) {
	_, st := newBoard(t)
	var got []tea.Msg
	f := forwarder{board: st, send: func(msg tea.Msg) { got = append(got, msg) }}
	snap := f.Tick()
	require.Len(t, got, 1)
	assert.Equal(t, SnapshotMsg{Snapshot: snap}, got[0])
}
