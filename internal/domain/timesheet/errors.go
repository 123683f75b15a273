package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")

	// ErrActiveTimesheetExists guards the one-active-timesheet-per-shift
	// invariant under concurrent finalize calls.
	ErrActiveTimesheetExists = errors.New("an active timesheet already exists for this shift")

	// ErrStaleState signals a lost race: another actor already moved the
	// timesheet out of the expected status. Callers must re-fetch, never
	// retry blindly.
	ErrStaleState = errors.New("timesheet was updated by another actor")

	ErrInvalidTransition       = errors.New("operation not allowed from current timesheet status")
	ErrPermissionDenied        = errors.New("actor is not permitted to perform this operation")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrPDFNotAvailable         = errors.New("timesheet PDF is only available once completed")
)
