package shift

import (
	"time"
)

type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Shift struct {
	ID               string
	JobID            string
	Date             time.Time
	StartTime        time.Time
	EndTime          time.Time
	Location         *string
	RequestedWorkers int
	CrewChiefID      *string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join fields
	JobName       *string
	ClientID      *string
	ClientName    *string
	CrewChiefName *string
}

// AssignedPersonnel is a worker's assignment to a shift with their recorded
// clock pairs.
type AssignedPersonnel struct {
	ID          string
	ShiftID     string
	EmployeeID  string
	RoleCode    string
	ClockStatus string
	CreatedAt   time.Time

	// Join fields
	EmployeeName *string

	TimeEntries []TimeEntry
}

// TimeEntry is one clock-in/clock-out pair. EntryNumber (1-3) establishes
// order; ClockOut is nil while the pair is still open.
type TimeEntry struct {
	ID                  string
	AssignedPersonnelID string
	EntryNumber         int
	ClockIn             time.Time
	ClockOut            *time.Time
	CreatedAt           time.Time
}
