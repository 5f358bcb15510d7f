package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"fstree/internal/domain"
	"fstree/internal/state"
)

type uiStyles struct {
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	statusStyle   lipgloss.Style
	warnStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	panelBorder   lipgloss.Style
}

func stylesFor(theme string) uiStyles {
	if strings.ToLower(theme) == "light" {
		return uiStyles{
			headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
			panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle:   lipgloss.NewStyle().Bold(true),
		mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model.state.Prefs.Theme)
	if model.showHelp {
		return renderHelpView(model, styles)
	}

	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{body, footer}, "\n")
}

func renderBody(model Model, styles uiStyles) string {
	visible := model.state.VisibleNodes()
	bodyHeight := model.listHeight()
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	leftWidth, rightWidth, showRight := splitPanels(model.width)
	left := renderTreePanel(model, styles, visible, bodyHeight, leftWidth)
	if !showRight {
		return left
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("│")
	right := renderDetailPanel(model, styles, rightWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func renderFooter(model Model, styles uiStyles) string {
	statusLine := trimStatus(model.status, model.width)
	if model.filterInputMode != "" {
		statusLine = fmt.Sprintf("%s: %s", filterLabel(model.filterInputMode), model.filterInput.View())
	}
	statusStyle := styles.mutedStyle
	lower := strings.ToLower(model.status)
	if strings.Contains(lower, "error") || strings.Contains(lower, "warning") {
		statusStyle = styles.warnStyle
	}
	statusLine = statusStyle.Render(statusLine)

	selectedCount, selectedSize := model.state.SelectionSummary()
	selectionInfo := fmt.Sprintf("Selected: %d (%s)", selectedCount, formatSize(selectedSize))
	sortInfo := fmt.Sprintf("Sort: %s", strings.ToUpper(string(model.state.Prefs.SortMode)))
	left := fmt.Sprintf("%s  %s%s", selectionInfo, sortInfo, filterSummary(model))
	keys := "↑/↓ move  → enter  ← up  enter expand  space select  d detach  m move  o sort  / search  e ext  z min  x clear  ? help  q quit"
	if model.confirming {
		keys = "y confirm  n cancel"
	}
	if model.awaitingDestination {
		keys = "navigate + p paste  esc cancel"
	}
	if model.filterInputMode != "" {
		keys = "enter apply  esc cancel"
	}
	footerLine := padLine(left, keys, model.width)
	return strings.Join([]string{statusLine, styles.mutedStyle.Render(footerLine)}, "\n")
}

func renderTreePanel(model Model, styles uiStyles, visible []state.VisibleNode, height, width int) string {
	if width < 20 {
		width = 20
	}
	contentWidth := maxInt(width-2, 10)
	status := "BROWSE"
	if model.awaitingDestination {
		status = "MOVE"
	}
	if model.confirming {
		status = "CONFIRM"
	}
	headerLine := padLine(styles.headerStyle.Render("fstree")+"  "+breadcrumbs(model.state.CurrentPath()), styles.statusStyle.Render(status), contentWidth)
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}
	if len(visible) == 0 {
		lines := []string{headerLine, "Nothing matches the current filters"}
		for i := 0; i < maxInt(listHeight-1, 0); i++ {
			lines = append(lines, "")
		}
		return styles.panelBorder.Width(contentWidth).Render(strings.Join(lines, "\n"))
	}
	start := clamp(model.viewTop, 0, maxInt(len(visible)-1, 0))
	end := start + listHeight
	if end > len(visible) {
		end = len(visible)
	}

	lines := make([]string, 0, height)
	lines = append(lines, headerLine)
	sizeWidth := 9
	for index := start; index < end; index++ {
		item := visible[index]
		node := item.Node
		indent := strings.Repeat(domain.IndentUnit, item.Depth)
		marker := "[ ]"
		if model.state.Selected[node.ID()] {
			marker = styles.selectedStyle.Render("[x]")
		}
		name := node.Name()
		if node.Kind() == domain.KindDirectory {
			name += "/"
		}
		lineSize := fmt.Sprintf("%*s", sizeWidth, formatSize(node.Size()))
		line := fmt.Sprintf("%s %s %s%s %s", lineSize, marker, indent, nodeIcon(model, node), name)
		if index == model.state.Cursor {
			line = styles.cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	content := strings.Join(lines, "\n")
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderDetailPanel(model Model, styles uiStyles, width, height int) string {
	if model.confirming {
		return renderPreviewPanel(model, styles, width, height)
	}
	node := model.state.CurrentNode()
	contentWidth := maxInt(width-2, 10)
	if node == nil {
		return styles.panelBorder.Width(contentWidth).Render("No selection")
	}
	lines := []string{
		styles.headerStyle.Render("Name"),
		node.Name(),
		"",
		styles.headerStyle.Render("Kind"),
		node.Kind().Label(),
		"",
		styles.headerStyle.Render("Size"),
		fmt.Sprintf("%dKB", node.Size()),
	}
	if dir, ok := node.(*domain.Directory); ok {
		counts := domain.Count(dir)
		lines = append(lines, "",
			fmt.Sprintf("Entries: %d", dir.Len()),
			fmt.Sprintf("Folders: %d", counts.Dirs-1),
			fmt.Sprintf("Files  : %d", counts.Files),
		)
	}
	if location, ok := model.state.Lookup(node.ID()); ok && location.Parent != nil {
		lines = append(lines, "", styles.headerStyle.Render("Parent"), location.Parent.Name())
	}

	content := strings.Join(lines, "\n")
	content = lipgloss.NewStyle().Width(contentWidth).Height(height).Render(content)
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderPreviewPanel(model Model, styles uiStyles, width, height int) string {
	preview := model.pendingPreview
	lines := []string{
		styles.headerStyle.Render("Action Preview"),
		fmt.Sprintf("Type : %s", strings.ToUpper(string(preview.Type))),
		fmt.Sprintf("Files: %d", preview.TotalFiles),
		fmt.Sprintf("Dirs : %d", preview.TotalDirs),
		fmt.Sprintf("Size : %s", formatSize(preview.TotalBytes)),
	}
	if preview.Destination != "" {
		lines = append(lines, fmt.Sprintf("Dest : %s", preview.Destination))
	}
	if len(preview.Samples) > 0 {
		lines = append(lines, "", styles.headerStyle.Render("Samples"))
		lines = append(lines, preview.Samples...)
	}
	if len(preview.Warnings) > 0 {
		lines = append(lines, "", styles.headerStyle.Render("Warnings"))
		for _, warn := range preview.Warnings {
			lines = append(lines, styles.warnStyle.Render(warn))
		}
	}
	contentWidth := maxInt(width-2, 10)
	content := strings.Join(lines, "\n")
	content = lipgloss.NewStyle().Width(contentWidth).Height(height).Render(content)
	return styles.panelBorder.Width(contentWidth).Render(content)
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Enter,
		model.keys.Right,
		model.keys.Left,
		model.keys.Select,
		model.keys.Detach,
		model.keys.Move,
		model.keys.Paste,
		model.keys.Sort,
		model.keys.Search,
		model.keys.ExtFilter,
		model.keys.SizeFilter,
		model.keys.ClearFilter,
		model.keys.Confirm,
		model.keys.Cancel,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("fstree Help"), ""}
	lines = append(lines, styles.headerStyle.Render("Navigation"))
	lines = append(lines, "↑/↓ move cursor", "→ enter directory", "← go to parent", "enter expand/collapse")
	lines = append(lines, "", styles.headerStyle.Render("Tree edits"))
	lines = append(lines, "d detach selection from its parent", "m move selection, then p in the destination")
	lines = append(lines, "directories ask for a second confirmation")
	lines = append(lines, "", styles.headerStyle.Render("Search"))
	lines = append(lines, "/ matches names, kind:image (or document, executable, file, directory) matches kinds")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-18s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	content := strings.Join(lines, "\n")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(content)
}

func breadcrumbs(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	return strings.Join(strings.Split(trimmed, "/"), " › ")
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func splitPanels(width int) (int, int, bool) {
	if width < 80 {
		return width, 0, false
	}
	left := int(float64(width) * 0.6)
	if left < 40 {
		left = 40
	}
	right := width - left - 1
	if right < 30 {
		return width, 0, false
	}
	return left, right, true
}

func nodeIcon(model Model, node domain.Node) string {
	switch node.Kind() {
	case domain.KindDirectory:
		if model.state.IsExpanded(node.ID()) {
			return "📂"
		}
		return "📁"
	case domain.KindImage:
		return "🖼"
	case domain.KindExecutable:
		return "⚙"
	default:
		return "📄"
	}
}

// formatSize renders a size held in kilobytes.
func formatSize(size int64) string {
	const unit = 1000
	if size < unit {
		return fmt.Sprintf("%dKB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	value := float64(size) / float64(div)
	units := []string{"MB", "GB", "TB", "PB", "EB"}
	return fmt.Sprintf("%.1f%s", value, units[exp])
}

func trimStatus(message string, width int) string {
	if width <= 0 {
		return message
	}
	max := width - 4
	if max <= 0 || len(message) <= max {
		return message
	}
	return message[:max] + "..."
}

func filterSummary(model Model) string {
	parts := []string{}
	if model.state.SearchQuery != "" {
		parts = append(parts, fmt.Sprintf("Search:%s", model.state.SearchQuery))
	}
	if model.state.FilterExt != "" {
		parts = append(parts, fmt.Sprintf("Ext:%s", model.state.FilterExt))
	}
	if model.state.MinSize > 0 {
		parts = append(parts, fmt.Sprintf("Min:%s", formatSize(model.state.MinSize)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  Filters[" + strings.Join(parts, ", ") + "]"
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
