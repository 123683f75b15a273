package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeTimesheetSubmitted      NotificationType = "timesheet_submitted"
	TypeTimesheetClientApproved NotificationType = "timesheet_client_approved"
	TypeTimesheetCompleted      NotificationType = "timesheet_completed"
	TypeTimesheetRejected       NotificationType = "timesheet_rejected"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
