package usecase

import "errors"

var (
	ErrDuplicateFreelancer = errors.New("a freelancer with this name already exists")
	ErrNoInvoiceTasks      = errors.New("no tasks found for the selected freelancer and date range")
	ErrIncompleteSelection = errors.New("freelancer, start date and end date are required")
	ErrUnknownSortField    = errors.New("unknown sort field")
	ErrUnknownDimension    = errors.New("unknown chart dimension")
)
