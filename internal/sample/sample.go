package sample

import "fstree/internal/domain"

type Tree struct {
	Root      *domain.Directory
	Documents *domain.Directory
	Project   *domain.Directory
}

type leafSpec struct {
	kind domain.Kind
	name string
	size int64
}

// Build assembles the demonstration tree: a root holding Documents (which
// nests Project) and two loose documents.
func Build() (Tree, error) {
	root := domain.NewDirectory("root")
	docs := domain.NewDirectory("Documents")
	project := domain.NewDirectory("Project")

	if err := addLeaves(docs, []leafSpec{
		{domain.KindDocument, "resume.pdf", 500},
		{domain.KindImage, "photo.jpg", 2000},
	}); err != nil {
		return Tree{}, err
	}
	if err := addLeaves(project, []leafSpec{
		{domain.KindExecutable, "main.exe", 10},
		{domain.KindDocument, "data.csv", 5000},
	}); err != nil {
		return Tree{}, err
	}
	docs.Add(project)
	root.Add(docs)
	if err := addLeaves(root, []leafSpec{
		{domain.KindDocument, "config.xml", 100},
		{domain.KindDocument, "readme.txt", 50},
	}); err != nil {
		return Tree{}, err
	}

	return Tree{Root: root, Documents: docs, Project: project}, nil
}

func addLeaves(dir *domain.Directory, leaves []leafSpec) error {
	for _, leaf := range leaves {
		file, err := domain.NewFileOfKind(leaf.kind, leaf.name, leaf.size)
		if err != nil {
			return err
		}
		dir.Add(file)
	}
	return nil
}
