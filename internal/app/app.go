package app

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	platformerrors "github.com/jmgilman/go/errors"

	"fstree/internal/config"
	"fstree/internal/domain"
	"fstree/internal/sample"
	"fstree/internal/services"
	"fstree/internal/state"
	"fstree/internal/ui"
)

func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// Show prints the sample tree followed by its total size. When detach names
// a node, that node is removed from its parent before printing.
func Show(w io.Writer, cfg config.Config, logger *slog.Logger, detach string) error {
	tree, err := sample.Build()
	if err != nil {
		return err
	}
	logger.Debug("sample tree built", "nodes", len(domain.Index(tree.Root)), "size_kb", tree.Root.Size())

	var detached domain.Node
	var from *domain.Directory
	if detach != "" {
		detached, from, err = detachByName(tree.Root, detach)
		if err != nil {
			return err
		}
		logger.Info("detached node", "name", detached.Name(), "parent", from.Name(), "size_kb", detached.Size())
	}

	if _, err := fmt.Fprintln(w, "File System Structure:"); err != nil {
		return err
	}
	if cfg.Color {
		err = ui.RenderStyled(w, tree.Root, cfg.Theme)
	} else {
		err = tree.Root.Display(w, "")
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nTotal size: %dKB\n", tree.Root.Size()); err != nil {
		return err
	}
	if detached != nil {
		_, err = fmt.Fprintf(w, "Detached %s from %s (%dKB)\n", detached.Name(), from.Name(), detached.Size())
	}
	return err
}

func detachByName(root *domain.Directory, name string) (domain.Node, *domain.Directory, error) {
	node := domain.Find(root, name)
	if node == nil {
		err := platformerrors.Newf(platformerrors.CodeNotFound, "no node named %q", name)
		return nil, nil, err
	}
	parent := domain.Index(root)[node.ID()].Parent
	if parent == nil {
		return nil, nil, platformerrors.New(platformerrors.CodeInvalidInput, "the root directory cannot be detached")
	}
	if err := parent.Remove(node); err != nil {
		return nil, nil, err
	}
	return node, parent, nil
}

// Browse runs the interactive browser over the sample tree and returns cfg
// updated with the preferences changed during the session.
func Browse(cfg config.Config, logger *slog.Logger, status string, opts ...tea.ProgramOption) (config.Config, error) {
	tree, err := sample.Build()
	if err != nil {
		return cfg, err
	}
	appState := state.NewState(cfg, tree.Root)
	actions := services.NewTreeActions(tree.Root, logger)
	model := ui.NewModel(appState, actions).WithStatus(status)

	program := tea.NewProgram(model, opts...)
	finalModel, err := program.Run()
	if err != nil {
		return cfg, fmt.Errorf("run browser: %w", err)
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		snapshot := provider.ConfigSnapshot()
		cfg.SortMode = snapshot.SortMode
	}
	logger.Info("browser closed", "size_kb", tree.Root.Size(), "sort", string(cfg.SortMode))
	return cfg, nil
}
