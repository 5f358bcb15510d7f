package services

import "context"

type Actions interface {
	Execute(ctx context.Context, req ActionRequest) (ActionResult, error)
}

type ActionPreviewer interface {
	Preview(ctx context.Context, req ActionRequest) (ActionPreview, error)
}
