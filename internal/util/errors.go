package util

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidFile        = errors.New("invalid file")
)
