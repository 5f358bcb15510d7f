package domain

import (
	"fmt"
	"io"

	platformerrors "github.com/jmgilman/go/errors"
)

// Directory is the container node. Its size is recomputed from the children on
// every call so it can never go stale after Add or Remove.
type Directory struct {
	id       string
	name     string
	children []Node
}

func NewDirectory(name string) *Directory {
	return &Directory{
		id:   newID(),
		name: name,
	}
}

func (dir *Directory) ID() string {
	return dir.id
}

func (dir *Directory) Name() string {
	return dir.name
}

func (dir *Directory) Kind() Kind {
	return KindDirectory
}

// Add appends node after the existing children. Adding the same node twice is
// allowed; the caller is responsible for keeping each node under one parent.
func (dir *Directory) Add(node Node) {
	if node == nil {
		return
	}
	dir.children = append(dir.children, node)
}

// Remove detaches the first child identical to node. It returns a NOT_FOUND
// error and leaves the children untouched when node is not a direct child.
// The removed subtree is left intact.
func (dir *Directory) Remove(node Node) error {
	index := dir.indexOf(node)
	if index < 0 {
		name := "<nil>"
		if node != nil {
			name = node.Name()
		}
		err := platformerrors.Newf(platformerrors.CodeNotFound, "%q is not a child of directory %q", name, dir.name)
		return platformerrors.WithContext(err, "directory", dir.name)
	}
	children := make([]Node, 0, len(dir.children)-1)
	children = append(children, dir.children[:index]...)
	children = append(children, dir.children[index+1:]...)
	dir.children = children
	return nil
}

// Children returns a copy of the children in insertion order.
func (dir *Directory) Children() []Node {
	children := make([]Node, len(dir.children))
	copy(children, dir.children)
	return children
}

func (dir *Directory) Len() int {
	return len(dir.children)
}

func (dir *Directory) Size() int64 {
	var total int64
	for _, child := range dir.children {
		total += child.Size()
	}
	return total
}

func (dir *Directory) Display(w io.Writer, indent string) error {
	if _, err := fmt.Fprintf(w, "%sDirectory: %s (%dKB)\n", indent, dir.name, dir.Size()); err != nil {
		return err
	}
	for _, child := range dir.children {
		if err := child.Display(w, indent+IndentUnit); err != nil {
			return err
		}
	}
	return nil
}

func (dir *Directory) indexOf(node Node) int {
	if node == nil {
		return -1
	}
	for index, child := range dir.children {
		if child == node {
			return index
		}
	}
	return -1
}
