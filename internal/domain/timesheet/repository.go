package timesheet

import (
	"context"
	"time"
)

// StatusUpdate carries the columns a transition may set alongside the status
// change. Nil fields are left untouched; the Clear* flags null columns out.
type StatusUpdate struct {
	ClientApprovedAt   *time.Time
	ClientSignatureID  *string
	ManagerApprovedAt  *time.Time
	ManagerSignatureID *string
	RejectionReason    *string
	RejectedBy         *string
	RejectedAt         *time.Time
	PDFArtifactID      *string
	ClearSignatures    bool
}

type TimesheetRepository interface {
	// CreateForShift inserts a new pending timesheet, guarded so that a
	// shift can hold at most one active timesheet. Returns
	// ErrActiveTimesheetExists when the guard fires.
	CreateForShift(ctx context.Context, shiftID string) (Timesheet, error)

	GetByID(ctx context.Context, id string) (Timesheet, error)
	List(ctx context.Context, filter ListFilter) ([]Timesheet, int64, error)

	// UpdateStatusIf performs the compare-and-swap transition:
	// status moves from expected to next only if it still equals expected.
	// Returns ErrStaleState when zero rows were affected.
	UpdateStatusIf(ctx context.Context, id string, expected, next Status, update StatusUpdate) error

	AppendTransition(ctx context.Context, t Transition) error
	ListTransitions(ctx context.Context, timesheetID string) ([]Transition, error)
}
