package quoting

import "errors"

// Error kinds returned by the engine. Callers match with errors.Is and map
// them to their own presentation; the engine never partially commits on any
// of these.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConsistency       = errors.New("consistency check failed")
	ErrExecution         = errors.New("storage execution failed")
)

var (
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrProjectAlreadyExists    = errors.New("quote already has a project")
	ErrInvalidReferenceNumber  = errors.New("invalid reference number")
	ErrUnknownEvent            = errors.New("unknown lifecycle event")
)
