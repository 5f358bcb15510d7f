package domain

import stderrors "errors"

// SkipChildren may be returned by a WalkFunc to skip the children of the
// directory it was called with.
var SkipChildren = stderrors.New("skip children")

type WalkFunc func(node Node, depth int) error

// Walk visits root and its descendants in display order.
func Walk(root Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, 0, fn)
	if err == SkipChildren {
		return nil
	}
	return err
}

func walk(node Node, depth int, fn WalkFunc) error {
	if err := fn(node, depth); err != nil {
		return err
	}
	dir, ok := node.(*Directory)
	if !ok {
		return nil
	}
	for _, child := range dir.children {
		err := walk(child, depth+1, fn)
		if err == SkipChildren {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type Counts struct {
	Files int
	Dirs  int
}

func Count(root Node) Counts {
	var counts Counts
	_ = Walk(root, func(node Node, _ int) error {
		if node.Kind() == KindDirectory {
			counts.Dirs++
		} else {
			counts.Files++
		}
		return nil
	})
	return counts
}

// Find returns the first node named name, searching root first and then its
// descendants in display order.
func Find(root Node, name string) Node {
	var found Node
	_ = Walk(root, func(node Node, _ int) error {
		if node.Name() == name {
			found = node
			return errStop
		}
		return nil
	})
	return found
}

// Contains reports whether node is dir or one of its descendants.
func Contains(dir *Directory, node Node) bool {
	if dir == nil || node == nil {
		return false
	}
	found := false
	_ = Walk(dir, func(current Node, _ int) error {
		if current == node {
			found = true
			return errStop
		}
		return nil
	})
	return found
}

var errStop = stderrors.New("stop walk")

// Location places a node inside a tree. Parent is nil for the root.
type Location struct {
	Node   Node
	Parent *Directory
	Depth  int
}

// Index maps every node ID reachable from root to its location.
func Index(root *Directory) map[string]Location {
	index := make(map[string]Location)
	if root == nil {
		return index
	}
	index[root.ID()] = Location{Node: root}
	indexChildren(root, 1, index)
	return index
}

func indexChildren(dir *Directory, depth int, index map[string]Location) {
	for _, child := range dir.children {
		index[child.ID()] = Location{Node: child, Parent: dir, Depth: depth}
		if sub, ok := child.(*Directory); ok {
			indexChildren(sub, depth+1, index)
		}
	}
}
