package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	platformerrors "github.com/jmgilman/go/errors"

	"fstree/internal/domain"
)

// TreeActions detaches and moves nodes inside one in-memory tree.
type TreeActions struct {
	root   *domain.Directory
	logger *slog.Logger
}

func NewTreeActions(root *domain.Directory, logger *slog.Logger) *TreeActions {
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeActions{root: root, logger: logger}
}

func (actions *TreeActions) Preview(ctx context.Context, req ActionRequest) (ActionPreview, error) {
	index := domain.Index(actions.root)
	if err := validateRequest(req, index); err != nil {
		return ActionPreview{}, err
	}

	preview := ActionPreview{
		Type:    req.Type,
		Samples: []string{},
	}
	if req.Type == ActionMove {
		preview.Destination = index[req.DestinationID].Node.Name()
	}

	for _, id := range req.SourceIDs {
		if err := ctx.Err(); err != nil {
			return ActionPreview{}, err
		}
		node := index[id].Node
		preview.Sources = append(preview.Sources, node.Name())
		_ = domain.Walk(node, func(current domain.Node, _ int) error {
			if current.Kind() == domain.KindDirectory {
				preview.TotalDirs++
				return nil
			}
			preview.TotalFiles++
			preview.TotalBytes += current.Size()
			if len(preview.Samples) < maxPreviewSamples {
				preview.Samples = append(preview.Samples, current.Name())
			}
			return nil
		})
	}
	if hasDuplicates(req.SourceIDs) {
		preview.Warnings = append(preview.Warnings, "the same node is listed more than once")
	}

	return preview, nil
}

func (actions *TreeActions) Execute(ctx context.Context, req ActionRequest) (ActionResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return ActionResult{Type: req.Type}, err
	}
	index := domain.Index(actions.root)
	if err := validateRequest(req, index); err != nil {
		return ActionResult{Type: req.Type}, err
	}
	if err := requireConfirmation(req, index); err != nil {
		return ActionResult{Type: req.Type}, err
	}

	var result ActionResult
	switch req.Type {
	case ActionDetach:
		result = actions.detachNodes(ctx, req.SourceIDs)
	case ActionMove:
		dest := index[req.DestinationID].Node.(*domain.Directory)
		result = actions.moveNodes(ctx, req.SourceIDs, dest)
	}

	result.Duration = time.Since(start)
	actions.logger.Info("tree action finished",
		"action", string(req.Type),
		"succeeded", result.SuccessCount,
		"failed", result.FailureCount,
		"bytes", result.MovedBytes,
	)
	return result, nil
}

func (actions *TreeActions) detachNodes(ctx context.Context, ids []string) ActionResult {
	result := ActionResult{Type: ActionDetach}
	for _, id := range ids {
		if ctx.Err() != nil {
			result.Message = "detach cancelled"
			return result
		}
		location, ok := domain.Index(actions.root)[id]
		if !ok || location.Parent == nil {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("node %s is no longer in the tree", id))
			continue
		}
		if err := location.Parent.Remove(location.Node); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		actions.logger.Debug("detached node", "name", location.Node.Name(), "parent", location.Parent.Name())
		result.SuccessCount++
		result.MovedBytes += location.Node.Size()
	}
	result.Message = "detach complete"
	return result
}

func (actions *TreeActions) moveNodes(ctx context.Context, ids []string, dest *domain.Directory) ActionResult {
	result := ActionResult{Type: ActionMove}
	for _, id := range ids {
		if ctx.Err() != nil {
			result.Message = "move cancelled"
			return result
		}
		location, ok := domain.Index(actions.root)[id]
		if !ok || location.Parent == nil {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("node %s is no longer in the tree", id))
			continue
		}
		if location.Parent == dest {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s is already in %s", location.Node.Name(), dest.Name()))
			continue
		}
		if err := location.Parent.Remove(location.Node); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		dest.Add(location.Node)
		actions.logger.Debug("moved node", "name", location.Node.Name(), "from", location.Parent.Name(), "to", dest.Name())
		result.SuccessCount++
		result.MovedBytes += location.Node.Size()
	}
	result.Message = "move complete"
	return result
}

func validateRequest(req ActionRequest, index map[string]domain.Location) error {
	if req.Type != ActionDetach && req.Type != ActionMove {
		return platformerrors.Newf(platformerrors.CodeInvalidInput, "unsupported action %q", req.Type)
	}
	if len(req.SourceIDs) == 0 {
		return platformerrors.New(platformerrors.CodeInvalidInput, "no nodes selected")
	}
	for _, id := range req.SourceIDs {
		location, ok := index[id]
		if !ok {
			return platformerrors.WithContext(
				platformerrors.New(platformerrors.CodeNotFound, "node not found"), "id", id)
		}
		if location.Parent == nil {
			return platformerrors.New(platformerrors.CodeInvalidInput, "the root directory cannot be detached or moved")
		}
	}
	if req.Type != ActionMove {
		return nil
	}

	destination, ok := index[req.DestinationID]
	if !ok {
		return platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeNotFound, "destination not found"), "id", req.DestinationID)
	}
	dest, ok := destination.Node.(*domain.Directory)
	if !ok {
		return platformerrors.Newf(platformerrors.CodeInvalidInput, "destination %q is not a directory", destination.Node.Name())
	}
	for _, id := range req.SourceIDs {
		source, ok := index[id].Node.(*domain.Directory)
		if ok && domain.Contains(source, dest) {
			return platformerrors.Newf(platformerrors.CodeConflict, "cannot move %q into itself", source.Name())
		}
	}
	return nil
}

func requireConfirmation(req ActionRequest, index map[string]domain.Location) error {
	want := ConfirmToken
	if req.Type == ActionDetach {
		for _, id := range req.SourceIDs {
			if index[id].Node.Kind() == domain.KindDirectory {
				want = ConfirmRecursiveToken
				break
			}
		}
	}
	if req.ConfirmToken != want {
		return platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeInvalidInput, "confirmation required"), "expected", want)
	}
	return nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
