package domain

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFile(t *testing.T, kind Kind, name string, size int64) *File {
	t.Helper()
	file, err := NewFileOfKind(kind, name, size)
	require.NoError(t, err)
	return file
}

func TestFileDisplay(t *testing.T) {
	tests := []struct {
		name string
		ctor func(string, int64) (*File, error)
		want string
	}{
		{"generic", NewFile, "  File: a.bin (7KB)\n"},
		{"image", NewImageFile, "  Image File: a.bin (7KB)\n"},
		{"document", NewDocumentFile, "  Document File: a.bin (7KB)\n"},
		{"executable", NewExecutableFile, "  Executable File: a.bin (7KB)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := tt.ctor("a.bin", 7)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, file.Display(&buf, "  "))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewFile_RejectsNegativeSize(t *testing.T) {
	file, err := NewDocumentFile("broken.txt", -1)

	require.Error(t, err)
	assert.Nil(t, file)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))

	var pe platformerrors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "broken.txt", pe.Context()["name"])
}

func TestNewFile_ZeroSizeAllowed(t *testing.T) {
	file, err := NewFile("empty", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), file.Size())
}

func TestNewFileOfKind_RejectsDirectory(t *testing.T) {
	_, err := NewFileOfKind(KindDirectory, "dir", 1)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
}

func TestFileSizeIsStable(t *testing.T) {
	file := mustFile(t, KindImage, "photo.jpg", 2000)

	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		require.NoError(t, file.Display(&buf, ""))
		assert.Equal(t, int64(2000), file.Size())
	}
}

func TestNodesHaveDistinctIDs(t *testing.T) {
	a := mustFile(t, KindFile, "a", 1)
	b := mustFile(t, KindFile, "a", 1)
	dir := NewDirectory("a")

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), dir.ID())
}

func TestDirectorySizeIsSumOfChildren(t *testing.T) {
	root := NewDirectory("root")
	inner := NewDirectory("inner")
	deeper := NewDirectory("deeper")

	deeper.Add(mustFile(t, KindExecutable, "x", 3))
	inner.Add(mustFile(t, KindFile, "y", 4))
	inner.Add(deeper)
	root.Add(inner)
	root.Add(mustFile(t, KindDocument, "z", 5))

	for _, dir := range []*Directory{root, inner, deeper} {
		var sum int64
		for _, child := range dir.Children() {
			sum += child.Size()
		}
		assert.Equal(t, sum, dir.Size(), dir.Name())
	}
	assert.Equal(t, int64(12), root.Size())
}

func TestEmptyDirectory(t *testing.T) {
	dir := NewDirectory("empty")

	assert.Equal(t, int64(0), dir.Size())
	assert.Equal(t, "Directory: empty (0KB)\n", Render(dir))
}

func TestDirectoryDisplayOrderAndIndent(t *testing.T) {
	root := NewDirectory("root")
	sub := NewDirectory("sub")
	sub.Add(mustFile(t, KindImage, "b.png", 2))
	root.Add(mustFile(t, KindFile, "a", 1))
	root.Add(sub)
	root.Add(mustFile(t, KindDocument, "c.txt", 3))

	want := strings.Join([]string{
		"Directory: root (6KB)",
		"  File: a (1KB)",
		"  Directory: sub (2KB)",
		"    Image File: b.png (2KB)",
		"  Document File: c.txt (3KB)",
		"",
	}, "\n")
	assert.Equal(t, want, Render(root))
}

func TestDirectoryDisplayUsesIndentPrefix(t *testing.T) {
	dir := NewDirectory("d")
	dir.Add(mustFile(t, KindFile, "f", 1))

	var buf bytes.Buffer
	require.NoError(t, dir.Display(&buf, ">>"))
	assert.Equal(t, ">>Directory: d (1KB)\n>>  File: f (1KB)\n", buf.String())
}

func TestRemoveThenAddAppendsAtEnd(t *testing.T) {
	dir := NewDirectory("d")
	a := mustFile(t, KindFile, "a", 1)
	b := mustFile(t, KindFile, "b", 2)
	c := mustFile(t, KindFile, "c", 3)
	dir.Add(a)
	dir.Add(b)
	dir.Add(c)

	require.NoError(t, dir.Remove(a))
	dir.Add(a)

	assert.Equal(t, []Node{b, c, a}, dir.Children())
}

func TestAddThenRemoveRestoresState(t *testing.T) {
	dir := NewDirectory("d")
	dir.Add(mustFile(t, KindFile, "a", 1))
	dir.Add(mustFile(t, KindFile, "b", 2))
	before := dir.Children()
	sizeBefore := dir.Size()

	extra := NewDirectory("extra")
	extra.Add(mustFile(t, KindFile, "big", 100))
	dir.Add(extra)
	require.Equal(t, sizeBefore+100, dir.Size())

	require.NoError(t, dir.Remove(extra))
	assert.Equal(t, before, dir.Children())
	assert.Equal(t, sizeBefore, dir.Size())
}

func TestRemoveMissingReportsNotFound(t *testing.T) {
	dir := NewDirectory("d")
	a := mustFile(t, KindFile, "a", 1)
	stranger := mustFile(t, KindFile, "a", 1)
	dir.Add(a)

	err := dir.Remove(stranger)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
	assert.Equal(t, []Node{a}, dir.Children())

	err = dir.Remove(nil)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
}

func TestRemoveOnlyFirstDuplicate(t *testing.T) {
	dir := NewDirectory("d")
	a := mustFile(t, KindFile, "a", 1)
	b := mustFile(t, KindFile, "b", 2)
	dir.Add(a)
	dir.Add(b)
	dir.Add(a)

	require.NoError(t, dir.Remove(a))
	assert.Equal(t, []Node{b, a}, dir.Children())
}

func TestRemoveKeepsDetachedSubtree(t *testing.T) {
	root := NewDirectory("root")
	sub := NewDirectory("sub")
	sub.Add(mustFile(t, KindFile, "f", 9))
	root.Add(sub)

	require.NoError(t, root.Remove(sub))
	assert.Equal(t, int64(0), root.Size())
	assert.Equal(t, int64(9), sub.Size())
	assert.Equal(t, 1, sub.Len())
}

func TestChildrenReturnsCopy(t *testing.T) {
	dir := NewDirectory("d")
	dir.Add(mustFile(t, KindFile, "a", 1))

	children := dir.Children()
	children[0] = nil

	assert.NotNil(t, dir.Children()[0])
}

func TestAddNilIgnored(t *testing.T) {
	dir := NewDirectory("d")
	dir.Add(nil)
	assert.Equal(t, 0, dir.Len())
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Image ")
	require.NoError(t, err)
	assert.Equal(t, KindImage, kind)

	_, err = ParseKind("socket")
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "File", KindFile.Label())
	assert.Equal(t, "Directory", KindDirectory.Label())
	assert.Equal(t, "executable", KindExecutable.String())
}
