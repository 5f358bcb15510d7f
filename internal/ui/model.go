package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fstree/internal/config"
	"fstree/internal/domain"
	"fstree/internal/services"
	"fstree/internal/state"
)

type Model struct {
	state               *state.State
	actions             services.Actions
	previewer           services.ActionPreviewer
	keys                KeyMap
	showHelp            bool
	status              string
	width               int
	height              int
	viewTop             int
	confirming          bool
	confirmStep         int
	pendingAction       services.ActionType
	pendingPreview      services.ActionPreview
	pendingSources      []string
	pendingDestination  string
	awaitingDestination bool
	filterInputMode     string
	filterInput         textinput.Model
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(appState *state.State, actions services.Actions) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorStatic)
	return Model{
		state:       appState,
		actions:     actions,
		previewer:   actionPreviewer(actions),
		keys:        DefaultKeyMap(),
		status:      "Ready - press ? for help",
		filterInput: input,
		width:       100,
		height:      30,
	}
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) Status() string {
	return model.status
}

// ConfigSnapshot returns the preferences the user changed while browsing so
// they can be persisted on exit.
func (model Model) ConfigSnapshot() config.Config {
	return config.Config{
		Theme:    model.state.Prefs.Theme,
		SortMode: model.state.Prefs.SortMode,
	}
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.filterInputMode != "" {
		return model.handleFilterInput(msg)
	}
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case model.confirming && key.Matches(msg, model.keys.Confirm):
		return model.confirmAction()
	case model.confirming && key.Matches(msg, model.keys.Cancel):
		model.confirming = false
		model.confirmStep = 0
		model.awaitingDestination = false
		model.status = "Action cancelled"
		return model, nil
	case model.confirming:
		return model, nil
	case model.awaitingDestination && key.Matches(msg, model.keys.Paste):
		model.awaitingDestination = false
		destination := model.state.Current
		if node := model.state.CurrentNode(); node != nil && node.Kind() == domain.KindDirectory {
			destination = node.ID()
		}
		return model.requestPreview(services.ActionMove, model.pendingSources, destination)
	case model.awaitingDestination && key.Matches(msg, model.keys.Cancel):
		model.awaitingDestination = false
		model.pendingSources = nil
		model.status = "Move cancelled"
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.state.Cursor > 0 {
			model.state.Cursor--
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		visible := model.state.VisibleNodes()
		if model.state.Cursor < len(visible)-1 {
			model.state.Cursor++
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Select):
		if node := model.state.CurrentNode(); node != nil {
			model.state.ToggleSelection(node.ID())
		}
		return model, nil
	case key.Matches(msg, model.keys.Detach):
		return model.beginAction(services.ActionDetach)
	case key.Matches(msg, model.keys.Move):
		return model.beginAction(services.ActionMove)
	case key.Matches(msg, model.keys.Enter):
		node := model.state.CurrentNode()
		if node == nil || node.Kind() != domain.KindDirectory {
			return model, nil
		}
		model.state.ToggleExpanded(node.ID())
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Right):
		node := model.state.CurrentNode()
		if node == nil || node.Kind() != domain.KindDirectory {
			return model, nil
		}
		model.state.SetCurrent(node.ID())
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Left):
		if model.state.LeaveDir() {
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Sort):
		mode := model.state.ToggleSortMode()
		model.status = fmt.Sprintf("Sorted by %s", mode)
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Search):
		return model.beginFilterInput("search", model.state.SearchQuery)
	case key.Matches(msg, model.keys.ExtFilter):
		return model.beginFilterInput("ext", model.state.FilterExt)
	case key.Matches(msg, model.keys.SizeFilter):
		return model.beginFilterInput("size", formatSizeLabel(model.state.MinSize))
	case key.Matches(msg, model.keys.ClearFilter):
		model.state.ClearFilters()
		model.status = "Filters cleared"
		model.ensureCursorVisible()
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) beginAction(actionType services.ActionType) (tea.Model, tea.Cmd) {
	model.awaitingDestination = false
	sources := model.state.SelectedIDs()
	if actionType == services.ActionMove {
		model.awaitingDestination = true
		model.pendingSources = sources
		model.status = fmt.Sprintf("Moving %d item(s): go to the destination directory and press p", len(sources))
		return model, nil
	}
	return model.requestPreview(actionType, sources, "")
}

func (model Model) requestPreview(actionType services.ActionType, sources []string, destination string) (tea.Model, tea.Cmd) {
	if model.previewer == nil {
		model.status = "Preview unavailable"
		return model, nil
	}
	request := services.ActionRequest{
		Type:          actionType,
		SourceIDs:     sources,
		DestinationID: destination,
	}
	model.pendingAction = actionType
	model.pendingSources = sources
	model.pendingDestination = destination

	// View reads the same tree; previews and edits stay on the update loop.
	preview, err := model.previewer.Preview(context.Background(), request)
	if err != nil {
		model.status = fmt.Sprintf("Preview error: %v", err)
		model.confirming = false
		return model, nil
	}
	model.pendingPreview = preview
	model.confirming = true
	model.confirmStep = 1
	model.status = previewPrompt(preview, 1)
	return model, nil
}

func (model Model) confirmAction() (tea.Model, tea.Cmd) {
	preview := model.pendingPreview
	confirmToken := services.ConfirmToken
	if preview.NeedsRecursiveConfirm() {
		if model.confirmStep == 1 {
			model.confirmStep = 2
			model.status = previewPrompt(preview, 2)
			return model, nil
		}
		confirmToken = services.ConfirmRecursiveToken
	}
	model.confirming = false
	model.confirmStep = 0
	request := services.ActionRequest{
		Type:          model.pendingAction,
		SourceIDs:     model.pendingSources,
		DestinationID: model.pendingDestination,
		ConfirmToken:  confirmToken,
	}
	model.pendingSources = nil

	result, err := model.actions.Execute(context.Background(), request)
	if err != nil {
		model.status = fmt.Sprintf("Action error: %v", err)
		return model, nil
	}
	model.state.ClearSelection()
	model.state.Refresh()
	model.ensureCursorVisible()
	model.status = fmt.Sprintf("%s (%d ok, %d failed, %s)",
		result.Message, result.SuccessCount, result.FailureCount, formatSize(result.MovedBytes))
	if len(result.Errors) > 0 {
		model.status += " warning: " + result.Errors[0]
	}
	return model, nil
}

func (model Model) beginFilterInput(mode, value string) (tea.Model, tea.Cmd) {
	model.filterInputMode = mode
	model.filterInput.SetValue(value)
	model.filterInput.CursorEnd()
	model.status = fmt.Sprintf("%s: %s", filterLabel(mode), value)
	return model, model.filterInput.Focus()
}

func (model Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		model.filterInputMode = ""
		model.filterInput.Blur()
		model.filterInput.SetValue("")
		model.status = "Filter cancelled"
		return model, nil
	case tea.KeyEnter:
		mode := model.filterInputMode
		value := strings.TrimSpace(model.filterInput.Value())
		model.filterInputMode = ""
		model.filterInput.Blur()
		switch mode {
		case "search":
			model.state.SearchQuery = value
		case "ext":
			model.state.FilterExt = value
		case "size":
			model.state.MinSize = parseSizeInput(value)
		}
		model.state.Cursor = 0
		model.ensureCursorVisible()
		model.status = "Filter applied"
		return model, nil
	}
	var cmd tea.Cmd
	model.filterInput, cmd = model.filterInput.Update(msg)
	model.status = fmt.Sprintf("%s: %s", filterLabel(model.filterInputMode), model.filterInput.Value())
	return model, cmd
}

// parseSizeInput reads a minimum size typed by the user. Plain numbers are
// kilobytes; m/mb, g/gb and t/tb suffixes scale by 1000.
func parseSizeInput(input string) int64 {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "" {
		return 0
	}
	suffixes := []struct {
		suffix     string
		multiplier int64
	}{
		{"kb", 1},
		{"k", 1},
		{"mb", 1000},
		{"m", 1000},
		{"gb", 1000 * 1000},
		{"g", 1000 * 1000},
		{"tb", 1000 * 1000 * 1000},
		{"t", 1000 * 1000 * 1000},
	}
	value := trimmed
	multiplier := int64(1)
	for _, candidate := range suffixes {
		if strings.HasSuffix(trimmed, candidate.suffix) {
			value = strings.TrimSuffix(trimmed, candidate.suffix)
			multiplier = candidate.multiplier
			break
		}
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return int64(parsed * float64(multiplier))
}

func filterLabel(mode string) string {
	switch mode {
	case "search":
		return "Search"
	case "ext":
		return "Extension"
	case "size":
		return "Min size"
	default:
		return "Filter"
	}
}

func formatSizeLabel(size int64) string {
	if size <= 0 {
		return ""
	}
	return formatSize(size)
}

func actionPreviewer(actions services.Actions) services.ActionPreviewer {
	if previewer, ok := actions.(services.ActionPreviewer); ok {
		return previewer
	}
	return nil
}

func previewPrompt(preview services.ActionPreview, step int) string {
	summary := fmt.Sprintf("%s on %d files, %d dirs, %s", strings.ToUpper(string(preview.Type)), preview.TotalFiles, preview.TotalDirs, formatSize(preview.TotalBytes))
	if preview.Destination != "" {
		summary += " into " + preview.Destination
	}
	if step == 2 {
		return summary + " - confirm recursive detach (y/n)"
	}
	return summary + " - confirm (y/n)"
}

func (model *Model) ensureCursorVisible() {
	visible := model.state.VisibleNodes()
	if len(visible) == 0 {
		model.state.Cursor = 0
		model.viewTop = 0
		return
	}
	if model.state.Cursor >= len(visible) {
		model.state.Cursor = len(visible) - 1
	}
	if model.state.Cursor < 0 {
		model.state.Cursor = 0
	}
	listHeight := model.listHeight()
	if listHeight <= 0 {
		return
	}
	if model.state.Cursor < model.viewTop {
		model.viewTop = model.state.Cursor
	}
	if model.state.Cursor >= model.viewTop+listHeight {
		model.viewTop = model.state.Cursor - listHeight + 1
	}
	maxTop := len(visible) - listHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if model.viewTop > maxTop {
		model.viewTop = maxTop
	}
}

func (model *Model) listHeight() int {
	return model.height - 6
}
