package sample

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstree/internal/domain"
)

func TestBuildTotals(t *testing.T) {
	tree, err := Build()
	require.NoError(t, err)

	assert.Equal(t, int64(7660), tree.Root.Size())
	assert.Equal(t, int64(7510), tree.Documents.Size())
	assert.Equal(t, int64(5010), tree.Project.Size())
}

func TestBuildDisplay(t *testing.T) {
	tree, err := Build()
	require.NoError(t, err)

	want := strings.Join([]string{
		"Directory: root (7660KB)",
		"  Directory: Documents (7510KB)",
		"    Document File: resume.pdf (500KB)",
		"    Image File: photo.jpg (2000KB)",
		"    Directory: Project (5010KB)",
		"      Executable File: main.exe (10KB)",
		"      Document File: data.csv (5000KB)",
		"  Document File: config.xml (100KB)",
		"  Document File: readme.txt (50KB)",
		"",
	}, "\n")
	assert.Equal(t, want, domain.Render(tree.Root))
}

func TestDetachProject(t *testing.T) {
	tree, err := Build()
	require.NoError(t, err)
	before := tree.Root.Size()
	projectSize := tree.Project.Size()

	require.NoError(t, tree.Documents.Remove(tree.Project))

	assert.Equal(t, before-projectSize, tree.Root.Size())
	assert.Equal(t, int64(2650), tree.Root.Size())
	assert.NotContains(t, domain.Render(tree.Root), "Project")
}

func TestBuildReturnsIndependentTrees(t *testing.T) {
	first, err := Build()
	require.NoError(t, err)
	second, err := Build()
	require.NoError(t, err)

	require.NoError(t, first.Documents.Remove(first.Project))
	assert.Equal(t, int64(7660), second.Root.Size())
}
