package timesheet

import (
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type FinalizeRequest struct {
	ShiftID string `json:"shift_id"`
}

func (r *FinalizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	} else if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveRequest carries a captured signature image for a client or manager
// approval. Signature capture happens before the transition call, never
// mid-transaction.
type ApproveRequest struct {
	TimesheetID    string
	SignatureImage []byte
	MaxImageBytes  int64
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
		})
	}

	if len(r.SignatureImage) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature image is required",
		})
	} else {
		if r.MaxImageBytes > 0 && int64(len(r.SignatureImage)) > r.MaxImageBytes {
			errs = append(errs, validator.ValidationError{
				Field:   "signature",
				Message: "signature image exceeds the maximum allowed size",
			})
		}
		if validator.SniffImageContentType(r.SignatureImage) == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "signature",
				Message: "signature image must be PNG or JPEG",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	TimesheetID string `json:"-"`
	Reason      string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimesheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timesheet_id",
			Message: "timesheet_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Status    *string
	ShiftID   *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	// Actor scoping, filled in by the service from the authenticated actor,
	// never from request input.
	CrewChiefEmployeeID *string
	ClientID            *string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPendingClientApproval),
		string(StatusPendingFinalApproval),
		string(StatusCompleted),
		string(StatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid timesheet status",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES / PROJECTIONS
// ========================================

type SignatureMeta struct {
	ID           string `json:"id"`
	ApprovalType string `json:"approval_type"`
	ActorID      string `json:"actor_id"`
	ActorRole    string `json:"actor_role"`
	ContentType  string `json:"content_type"`
	CapturedAt   string `json:"captured_at"`
}

type PDFMeta struct {
	ID          string `json:"id"`
	ByteSize    int    `json:"byte_size"`
	ContentType string `json:"content_type"`
	GeneratedAt string `json:"generated_at"`
}

type TimeEntryResponse struct {
	EntryNumber int     `json:"entry_number"`
	ClockIn     string  `json:"clock_in"`
	ClockOut    *string `json:"clock_out,omitempty"`
}

type PersonnelResponse struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	RoleCode     string              `json:"role_code"`
	TimeEntries  []TimeEntryResponse `json:"time_entries"`
	TotalHours   float64             `json:"total_hours"`
}

type ShiftSummary struct {
	ID          string  `json:"id"`
	JobName     string  `json:"job_name"`
	ClientName  string  `json:"client_name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Location    *string `json:"location,omitempty"`
	CrewChief   *string `json:"crew_chief,omitempty"`
	ShiftStatus string  `json:"shift_status"`
}

type TransitionResponse struct {
	Action     string  `json:"action"`
	FromStatus *string `json:"from_status,omitempty"`
	ToStatus   string  `json:"to_status"`
	ActorID    string  `json:"actor_id"`
	ActorRole  string  `json:"actor_role"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// TimesheetResponse is the typed projection read endpoints return; a
// dedicated mapping step builds it so the presentation tier never reshapes
// nested shift/job/client data itself.
type TimesheetResponse struct {
	ID                string               `json:"id"`
	Status            Status               `json:"status"`
	Shift             ShiftSummary         `json:"shift"`
	Personnel         []PersonnelResponse  `json:"personnel"`
	TotalHours        float64              `json:"total_hours"`
	ClientApprovedAt  *string              `json:"client_approved_at,omitempty"`
	ManagerApprovedAt *string              `json:"manager_approved_at,omitempty"`
	ClientSignature   *SignatureMeta       `json:"client_signature,omitempty"`
	ManagerSignature  *SignatureMeta       `json:"manager_signature,omitempty"`
	RejectionReason   *string              `json:"rejection_reason,omitempty"`
	RejectedBy        *string              `json:"rejected_by,omitempty"`
	PDF               *PDFMeta             `json:"pdf,omitempty"`
	Transitions       []TransitionResponse `json:"transitions,omitempty"`
	CreatedAt         string               `json:"created_at"`
	UpdatedAt         string               `json:"updated_at"`
}

type ListTimesheetsResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}
