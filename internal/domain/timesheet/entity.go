package timesheet

import (
	"time"
)

type Status string

const (
	StatusPendingClientApproval Status = "pending_client_approval"
	StatusPendingFinalApproval  Status = "pending_final_approval"
	StatusCompleted             Status = "completed"
	StatusRejected              Status = "rejected"
)

// IsTerminal reports whether no further transition may leave the status.
// Only completed is permanently closed; rejected can cycle back through
// resubmission.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// IsActive reports whether the timesheet still blocks a new finalize on its
// shift.
func (s Status) IsActive() bool {
	return s == StatusPendingClientApproval || s == StatusPendingFinalApproval
}

type Action string

const (
	ActionFinalize       Action = "finalize"
	ActionClientApprove  Action = "client_approve"
	ActionManagerApprove Action = "manager_approve"
	ActionReject         Action = "reject"
	ActionResubmit       Action = "resubmit"
)

type Timesheet struct {
	ID                 string
	ShiftID            string
	Status             Status
	ClientApprovedAt   *time.Time
	ClientSignatureID  *string
	ManagerApprovedAt  *time.Time
	ManagerSignatureID *string
	RejectionReason    *string
	RejectedBy         *string
	RejectedAt         *time.Time
	PDFArtifactID      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Transition is one appended audit-log row. The transition log is the full
// history of the timesheet; the row itself only carries the latest state.
type Transition struct {
	ID          string
	TimesheetID string
	Action      Action
	FromStatus  *Status
	ToStatus    Status
	ActorID     string
	ActorRole   string
	Reason      *string
	CreatedAt   time.Time
}
