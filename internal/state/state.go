package state

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"fstree/internal/config"
	"fstree/internal/domain"
)

type Preferences struct {
	SortMode domain.SortMode
	Theme    string
}

type State struct {
	Root        *domain.Directory
	Current     string
	Cursor      int
	Selected    map[string]bool
	Expanded    map[string]bool
	Prefs       Preferences
	SearchQuery string
	FilterExt   string
	MinSize     int64
	index       map[string]domain.Location
}

func NewState(cfg config.Config, root *domain.Directory) *State {
	appState := &State{
		Root:     root,
		Selected: make(map[string]bool),
		Expanded: make(map[string]bool),
		Prefs: Preferences{
			SortMode: cfg.SortMode,
			Theme:    cfg.Theme,
		},
	}
	appState.Refresh()
	return appState
}

// Refresh re-indexes the tree after it was mutated and drops any selection,
// expansion or current directory that is no longer reachable from Root.
func (appState *State) Refresh() {
	appState.index = domain.Index(appState.Root)
	if appState.Root == nil {
		appState.Current = ""
		return
	}
	if _, ok := appState.index[appState.Current]; !ok {
		appState.Current = appState.Root.ID()
		appState.Cursor = 0
	}

	filteredSelected := make(map[string]bool, len(appState.Selected))
	for id := range appState.Selected {
		if _, ok := appState.index[id]; ok {
			filteredSelected[id] = true
		}
	}
	appState.Selected = filteredSelected

	filteredExpanded := make(map[string]bool, len(appState.Expanded))
	for id := range appState.Expanded {
		if _, ok := appState.index[id]; ok {
			filteredExpanded[id] = true
		}
	}
	appState.Expanded = filteredExpanded
	appState.Expanded[appState.Current] = true

	visible := appState.VisibleNodes()
	if appState.Cursor >= len(visible) {
		appState.Cursor = maxInt(len(visible)-1, 0)
	}
}

func (appState *State) Lookup(id string) (domain.Location, bool) {
	location, ok := appState.index[id]
	return location, ok
}

func (appState *State) SetCurrent(id string) bool {
	location, ok := appState.index[id]
	if !ok || location.Node.Kind() != domain.KindDirectory {
		return false
	}
	appState.Current = id
	appState.Cursor = 0
	appState.Expanded[id] = true
	return true
}

func (appState *State) CurrentDir() *domain.Directory {
	location, ok := appState.index[appState.Current]
	if !ok {
		return appState.Root
	}
	dir, _ := location.Node.(*domain.Directory)
	return dir
}

type VisibleNode struct {
	Node  domain.Node
	Depth int
}

func (appState *State) VisibleNodes() []VisibleNode {
	root := appState.CurrentDir()
	if root == nil {
		return nil
	}
	visible := make([]VisibleNode, 0, len(appState.index))
	appState.appendNode(&visible, root, 0)
	return visible
}

func (appState *State) CurrentNode() domain.Node {
	visible := appState.VisibleNodes()
	if len(visible) == 0 || appState.Cursor < 0 || appState.Cursor >= len(visible) {
		return nil
	}
	return visible[appState.Cursor].Node
}

// CurrentPath is the slash separated chain of names from Root to Current.
func (appState *State) CurrentPath() string {
	var names []string
	id := appState.Current
	for {
		location, ok := appState.index[id]
		if !ok {
			break
		}
		names = append([]string{location.Node.Name()}, names...)
		if location.Parent == nil {
			break
		}
		id = location.Parent.ID()
	}
	if len(names) == 0 {
		return "/"
	}
	return path.Join(append([]string{"/"}, names...)...)
}

func (appState *State) LeaveDir() bool {
	location, ok := appState.index[appState.Current]
	if !ok || location.Parent == nil {
		return false
	}
	appState.Current = location.Parent.ID()
	appState.Cursor = 0
	appState.Expanded[appState.Current] = true
	return true
}

func (appState *State) ToggleExpanded(id string) bool {
	if id == "" {
		return false
	}
	appState.Expanded[id] = !appState.Expanded[id]
	return appState.Expanded[id]
}

func (appState *State) IsExpanded(id string) bool {
	return appState.Expanded[id]
}

// SelectionSummary counts the selected nodes and their total size. A node
// whose ancestor is also selected is not counted twice.
func (appState *State) SelectionSummary() (int, int64) {
	var total int64
	count := len(appState.Selected)
	for id := range appState.Selected {
		if appState.hasSelectedAncestor(id) {
			continue
		}
		if location, ok := appState.index[id]; ok {
			total += location.Node.Size()
		}
	}
	return count, total
}

func (appState *State) hasSelectedAncestor(id string) bool {
	location, ok := appState.index[id]
	for ok && location.Parent != nil {
		if appState.Selected[location.Parent.ID()] {
			return true
		}
		location, ok = appState.index[location.Parent.ID()]
	}
	return false
}

func (appState *State) ToggleSortMode() domain.SortMode {
	switch appState.Prefs.SortMode {
	case domain.SortBySize:
		appState.Prefs.SortMode = domain.SortByName
	case domain.SortByName:
		appState.Prefs.SortMode = domain.SortByKind
	default:
		appState.Prefs.SortMode = domain.SortBySize
	}
	return appState.Prefs.SortMode
}

func (appState *State) appendNode(visible *[]VisibleNode, node domain.Node, depth int) {
	if node == nil {
		return
	}
	dir, isDir := node.(*domain.Directory)
	filtering := appState.SearchQuery != "" || appState.FilterExt != "" || appState.MinSize > 0
	if !filtering {
		*visible = append(*visible, VisibleNode{Node: node, Depth: depth})
		if !isDir || !appState.IsExpanded(node.ID()) {
			return
		}
		for _, child := range appState.sortedChildren(dir) {
			appState.appendNode(visible, child, depth+1)
		}
		return
	}
	if !isDir {
		if appState.nodeMatches(node) {
			*visible = append(*visible, VisibleNode{Node: node, Depth: depth})
		}
		return
	}
	children := appState.sortedChildren(dir)
	filteredChildren := make([]domain.Node, 0, len(children))
	for _, child := range children {
		if appState.nodeMatches(child) {
			filteredChildren = append(filteredChildren, child)
			continue
		}
		if sub, ok := child.(*domain.Directory); ok && appState.dirHasMatch(sub) {
			filteredChildren = append(filteredChildren, child)
		}
	}
	if node.ID() == appState.Current || appState.nodeMatches(node) || len(filteredChildren) > 0 {
		*visible = append(*visible, VisibleNode{Node: node, Depth: depth})
		if !appState.IsExpanded(node.ID()) {
			return
		}
		for _, child := range filteredChildren {
			appState.appendNode(visible, child, depth+1)
		}
	}
}

// sortedChildren orders a listing for the browser only; Display keeps
// insertion order.
func (appState *State) sortedChildren(dir *domain.Directory) []domain.Node {
	children := dir.Children()
	if len(children) < 2 {
		return children
	}
	less := func(i, j int) bool {
		leftDir := children[i].Kind() == domain.KindDirectory
		rightDir := children[j].Kind() == domain.KindDirectory
		if leftDir != rightDir {
			return leftDir
		}
		switch appState.Prefs.SortMode {
		case domain.SortByName:
			return children[i].Name() < children[j].Name()
		case domain.SortByKind:
			if children[i].Kind() != children[j].Kind() {
				return children[i].Kind() < children[j].Kind()
			}
			return children[i].Name() < children[j].Name()
		default:
			return children[i].Size() > children[j].Size()
		}
	}
	sort.SliceStable(children, less)
	return children
}

func (appState *State) nodeMatches(node domain.Node) bool {
	if node == nil {
		return false
	}
	if appState.SearchQuery != "" && !searchMatches(appState.SearchQuery, node) {
		return false
	}
	if appState.FilterExt != "" {
		filter := strings.ToLower(strings.TrimPrefix(appState.FilterExt, "."))
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(node.Name()), "."))
		if ext != filter {
			return false
		}
	}
	if appState.MinSize > 0 && node.Size() < appState.MinSize {
		return false
	}
	return true
}

// searchMatches treats "kind:<kind>" as a kind filter and anything else as a
// case-insensitive name substring.
func searchMatches(query string, node domain.Node) bool {
	lower := strings.ToLower(strings.TrimSpace(query))
	if value, ok := strings.CutPrefix(lower, "kind:"); ok {
		if kind, err := domain.ParseKind(value); err == nil {
			return node.Kind() == kind
		}
	}
	return strings.Contains(strings.ToLower(node.Name()), lower)
}

func (appState *State) dirHasMatch(dir *domain.Directory) bool {
	for _, child := range dir.Children() {
		if appState.nodeMatches(child) {
			return true
		}
		if sub, ok := child.(*domain.Directory); ok && appState.dirHasMatch(sub) {
			return true
		}
	}
	return false
}

func (appState *State) ClearFilters() {
	appState.SearchQuery = ""
	appState.FilterExt = ""
	appState.MinSize = 0
}

func (appState *State) ToggleSelection(id string) {
	if id == "" {
		return
	}
	appState.Selected[id] = !appState.Selected[id]
	if !appState.Selected[id] {
		delete(appState.Selected, id)
	}
}

func (appState *State) ClearSelection() {
	appState.Selected = make(map[string]bool)
}

// SelectedIDs returns the selection in display order of the whole tree, or
// the node under the cursor when nothing is selected.
func (appState *State) SelectedIDs() []string {
	ids := make([]string, 0, len(appState.Selected))
	if appState.Root != nil {
		_ = domain.Walk(appState.Root, func(node domain.Node, _ int) error {
			if appState.Selected[node.ID()] {
				ids = append(ids, node.ID())
			}
			return nil
		})
	}

	if len(ids) == 0 {
		if node := appState.CurrentNode(); node != nil {
			ids = append(ids, node.ID())
		}
	}
	return ids
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
