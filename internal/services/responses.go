package services

import "time"

type ActionResult struct {
	Type         ActionType
	SuccessCount int
	FailureCount int
	MovedBytes   int64
	Duration     time.Duration
	Message      string
	Errors       []string
}
