package domain

import (
	"io"
	"strings"

	"github.com/google/uuid"
	platformerrors "github.com/jmgilman/go/errors"
)

// IndentUnit is the extra indentation applied to each nesting level by Display.
const IndentUnit = "  "

// Node is the contract shared by files and directories so callers can treat a
// single item and a group of items the same way.
//
// Trees must stay acyclic and a node must have at most one parent. Neither is
// checked: a cycle makes Size and Display recurse forever and an aliased node
// is counted once per parent.
type Node interface {
	ID() string
	Name() string
	Kind() Kind
	Size() int64
	// Display writes the node's lines to w, each prefixed by indent. The only
	// error it returns is one produced by w.
	Display(w io.Writer, indent string) error
}

type Kind int

const (
	KindFile Kind = iota
	KindImage
	KindDocument
	KindExecutable
	KindDirectory
)

var kindNames = map[Kind]string{
	KindFile:       "file",
	KindImage:      "image",
	KindDocument:   "document",
	KindExecutable: "executable",
	KindDirectory:  "directory",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Label is the tag written in front of the node name by Display.
func (kind Kind) Label() string {
	switch kind {
	case KindImage:
		return "Image File"
	case KindDocument:
		return "Document File"
	case KindExecutable:
		return "Executable File"
	case KindDirectory:
		return "Directory"
	default:
		return "File"
	}
}

func (kind Kind) IsLeaf() bool {
	return kind != KindDirectory
}

func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for kind, name := range kindNames {
		if name == normalized {
			return kind, nil
		}
	}
	err := platformerrors.Newf(platformerrors.CodeInvalidInput, "unknown node kind %q", value)
	return KindFile, err
}

// Render returns everything node.Display would write.
func Render(node Node) string {
	var builder strings.Builder
	if node == nil {
		return ""
	}
	_ = node.Display(&builder, "")
	return builder.String()
}

func newID() string {
	return uuid.NewString()
}
