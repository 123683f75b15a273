package timesheet

import (
	"context"
)

// TimesheetService is the authority over timesheet status. All transitions
// run as conditional updates inside one transaction; a lost race surfaces as
// ErrStaleState and is never retried here.
type TimesheetService interface {
	// Finalize creates a timesheet for a shift and moves it into
	// pending_client_approval. Fails with ErrActiveTimesheetExists when an
	// active timesheet already exists for the shift.
	Finalize(ctx context.Context, req FinalizeRequest) (TimesheetResponse, error)

	// ClientApprove records the client signature and advances to
	// pending_final_approval.
	ClientApprove(ctx context.Context, req ApproveRequest) (TimesheetResponse, error)

	// ManagerApprove records the manager signature, generates the PDF,
	// synchronizes the shift and completes the timesheet, all in one unit of
	// work.
	ManagerApprove(ctx context.Context, req ApproveRequest) (TimesheetResponse, error)

	// Reject moves a pending timesheet to rejected with a mandatory reason.
	Reject(ctx context.Context, req RejectRequest) (TimesheetResponse, error)

	// Resubmit cycles a rejected timesheet back to pending_client_approval,
	// discarding previously captured signatures.
	Resubmit(ctx context.Context, timesheetID string) (TimesheetResponse, error)

	GetTimesheet(ctx context.Context, id string) (TimesheetResponse, error)
	ListTimesheets(ctx context.Context, filter ListFilter) (ListTimesheetsResponse, error)

	// GetPDF returns the generated artifact bytes; only available once the
	// timesheet is completed.
	GetPDF(ctx context.Context, id string) (content []byte, contentType string, err error)
}
