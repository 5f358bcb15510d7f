package ui

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstree/internal/config"
	"fstree/internal/domain"
	"fstree/internal/sample"
	"fstree/internal/services"
	"fstree/internal/state"
)

func newTestModel(t *testing.T) (Model, sample.Tree) {
	t.Helper()
	tree, err := sample.Build()
	require.NoError(t, err)
	appState := state.NewState(config.DefaultConfig(), tree.Root)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewModel(appState, services.NewTreeActions(tree.Root, logger)), tree
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

func press(t *testing.T, model Model, keys ...string) Model {
	t.Helper()
	for _, name := range keys {
		updated, _ := model.Update(keyMsg(name))
		model = updated.(Model)
	}
	return model
}

func TestDetachFile(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "down", "down")
	require.Equal(t, "readme.txt", model.state.CurrentNode().Name())

	model = press(t, model, "d")
	require.True(t, model.confirming)
	assert.Contains(t, model.Status(), "confirm (y/n)")

	model = press(t, model, "y")
	assert.False(t, model.confirming)
	assert.Contains(t, model.Status(), "detach complete")
	assert.Equal(t, int64(7610), tree.Root.Size())
	assert.Nil(t, domain.Find(tree.Root, "readme.txt"))
}

func TestDetachDirectoryNeedsSecondConfirm(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "d", "y")
	require.True(t, model.confirming)
	assert.Contains(t, model.Status(), "recursive")
	assert.Equal(t, int64(7660), tree.Root.Size())

	model = press(t, model, "y")
	assert.False(t, model.confirming)
	assert.Equal(t, int64(150), tree.Root.Size())
	assert.Equal(t, []string{"root", "config.xml", "readme.txt"}, visibleNames(model))
}

func TestActionsApplyInsideUpdate(t *testing.T) {
	model, tree := newTestModel(t)
	model = press(t, model, "down")

	for _, name := range []string{"d", "y", "y"} {
		updated, cmd := model.Update(keyMsg(name))
		model = updated.(Model)
		require.Nil(t, cmd, "key %q must not hand tree work to a command", name)
	}

	assert.Equal(t, int64(150), tree.Root.Size())
	assert.Contains(t, model.Status(), "detach complete")

	assert.Contains(t, model.View(), "readme.txt")
	assert.Equal(t, []string{"root", "config.xml", "readme.txt"}, visibleNames(model))
}

func TestDetachDuringPendingMoveDropsMove(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "down", "m")
	require.True(t, model.awaitingDestination)

	model = press(t, model, "d")
	assert.False(t, model.awaitingDestination)
	require.True(t, model.confirming)
	assert.Contains(t, model.Status(), "DETACH")

	model = press(t, model, "n", "p")
	assert.Equal(t, "Action cancelled", model.Status())
	assert.False(t, model.confirming)
	assert.Equal(t, int64(7660), tree.Root.Size())
}

func TestCancelDetach(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "d", "n")

	assert.False(t, model.confirming)
	assert.Equal(t, "Action cancelled", model.Status())
	assert.Equal(t, int64(7660), tree.Root.Size())
}

func TestDetachRootReportsError(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "d")

	assert.False(t, model.confirming)
	assert.Contains(t, model.Status(), "Preview error")
	assert.Equal(t, int64(7660), tree.Root.Size())
}

func TestMoveSelectionIntoDirectory(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "down", "space", "down", "space")
	count, total := model.state.SelectionSummary()
	require.Equal(t, 2, count)
	require.Equal(t, int64(150), total)

	model = press(t, model, "m")
	require.True(t, model.awaitingDestination)

	model = press(t, model, "up", "up", "p")
	require.True(t, model.confirming)
	assert.Equal(t, "Documents", model.pendingPreview.Destination)

	model = press(t, model, "y")
	assert.Equal(t, int64(7660), tree.Documents.Size())
	assert.Equal(t, int64(7660), tree.Root.Size())
	assert.Equal(t, 1, tree.Root.Len())
	assert.Empty(t, model.state.Selected)
}

func TestMoveCancelled(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(t, model, "down", "down", "m", "esc")

	assert.False(t, model.awaitingDestination)
	assert.Equal(t, "Move cancelled", model.Status())
}

func TestEnterAndLeaveDirectory(t *testing.T) {
	model, tree := newTestModel(t)

	model = press(t, model, "down", "right")
	assert.Equal(t, tree.Documents.ID(), model.state.Current)

	model = press(t, model, "left")
	assert.Equal(t, tree.Root.ID(), model.state.Current)
}

func TestExpandWithEnter(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(t, model, "down", "enter")

	assert.Equal(t,
		[]string{"root", "Documents", "Project", "photo.jpg", "resume.pdf", "config.xml", "readme.txt"},
		visibleNames(model))
}

func TestSearchInput(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(t, model, "/", "xml")
	assert.Equal(t, "search", model.filterInputMode)
	assert.Equal(t, "Search: xml", model.Status())

	model = press(t, model, "enter")
	assert.Empty(t, model.filterInputMode)
	assert.Equal(t, "xml", model.state.SearchQuery)
	assert.Equal(t, []string{"root", "config.xml"}, visibleNames(model))

	model = press(t, model, "x")
	assert.Empty(t, model.state.SearchQuery)
}

func TestFilterInputIgnoresShortcuts(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(t, model, "z", "q", "esc")

	assert.Equal(t, "Filter cancelled", model.Status())
	assert.Zero(t, model.state.MinSize)
}

func TestSortToggle(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(t, model, "o")

	assert.Equal(t, domain.SortByName, model.state.Prefs.SortMode)
	assert.Equal(t, domain.SortByName, model.ConfigSnapshot().SortMode)
}

func TestQuit(t *testing.T) {
	model, _ := newTestModel(t)

	_, cmd := model.Update(keyMsg("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsTree(t *testing.T) {
	model, _ := newTestModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	view := model.View()

	assert.Contains(t, view, "fstree")
	assert.Contains(t, view, "Documents/")
	assert.Contains(t, view, "readme.txt")

	model = press(t, model, "?")
	assert.Contains(t, model.View(), "fstree Help")
}

func TestParseSizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"", 0},
		{"500", 500},
		{"2k", 2},
		{"2mb", 2000},
		{"1.5m", 1500},
		{"1g", 1000 * 1000},
		{"abc", 0},
		{"-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSizeInput(tt.input))
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "50KB", formatSize(50))
	assert.Equal(t, "7.7MB", formatSize(7660))
	assert.Equal(t, "2.0GB", formatSize(2000*1000))
}

func TestRenderStyledMatchesDisplayWithoutTerminal(t *testing.T) {
	tree, err := sample.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStyled(&buf, tree.Root, "dark"))

	assert.Equal(t, domain.Render(tree.Root), buf.String())
}

func visibleNames(model Model) []string {
	visible := model.state.VisibleNodes()
	out := make([]string, 0, len(visible))
	for _, item := range visible {
		out = append(out, item.Node.Name())
	}
	return out
}
