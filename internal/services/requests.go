package services

type ActionType string

const (
	ActionDetach ActionType = "detach"
	ActionMove   ActionType = "move"
)

const (
	ConfirmToken          = "confirm"
	ConfirmRecursiveToken = "confirm-recursive"
)

type ActionRequest struct {
	Type          ActionType
	SourceIDs     []string
	DestinationID string
	ConfirmToken  string
}
