package domain

import (
	"fmt"
	"io"

	platformerrors "github.com/jmgilman/go/errors"
)

// File is a leaf. Every file kind shares this type; the kind only changes the
// label written by Display.
type File struct {
	id   string
	name string
	kind Kind
	size int64
}

func NewFile(name string, size int64) (*File, error) {
	return newFile(name, size, KindFile)
}

func NewImageFile(name string, size int64) (*File, error) {
	return newFile(name, size, KindImage)
}

func NewDocumentFile(name string, size int64) (*File, error) {
	return newFile(name, size, KindDocument)
}

func NewExecutableFile(name string, size int64) (*File, error) {
	return newFile(name, size, KindExecutable)
}

// NewFileOfKind builds a leaf of any file kind. KindDirectory is rejected.
func NewFileOfKind(kind Kind, name string, size int64) (*File, error) {
	if !kind.IsLeaf() {
		err := platformerrors.Newf(platformerrors.CodeInvalidInput, "%s is not a file kind", kind)
		return nil, platformerrors.WithContext(err, "name", name)
	}
	return newFile(name, size, kind)
}

func newFile(name string, size int64, kind Kind) (*File, error) {
	if size < 0 {
		err := platformerrors.Newf(platformerrors.CodeInvalidInput, "file %q has negative size %d", name, size)
		return nil, platformerrors.WithContextMap(err, map[string]interface{}{
			"name": name,
			"size": size,
		})
	}
	return &File{
		id:   newID(),
		name: name,
		kind: kind,
		size: size,
	}, nil
}

func (file *File) ID() string {
	return file.id
}

func (file *File) Name() string {
	return file.name
}

func (file *File) Kind() Kind {
	return file.kind
}

func (file *File) Size() int64 {
	return file.size
}

func (file *File) Display(w io.Writer, indent string) error {
	_, err := fmt.Fprintf(w, "%s%s: %s (%dKB)\n", indent, file.kind.Label(), file.name, file.size)
	return err
}
