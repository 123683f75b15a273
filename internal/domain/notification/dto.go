package notification

import (
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
)

// ============= Dispatch input =============

// TransitionEvent is emitted after a timesheet transition commits. The
// dispatcher resolves recipients from it; failures never propagate back to
// the transition.
type TransitionEvent struct {
	Action              timesheet.Action
	TimesheetID         string
	ShiftID             string
	JobName             string
	ClientName          string
	ShiftDate           string
	ClientID            *string
	CrewChiefEmployeeID *string // employee id of the shift's crew chief, when one exists
	Reason              *string // set on rejections
}

// ============= Request DTOs =============

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

// ============= Response DTOs =============

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
