package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/notification"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/user"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification dispatcher configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo     notification.Repository
	userRepo user.UserRepository
	hub      *sse.Hub
	logger   *slog.Logger
	config   Config

	queue  chan notification.TransitionEvent
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewDispatcher creates a notification dispatcher with background workers.
// Dispatch never blocks a transition: events are queued and fanned out after
// the fact, and every failure ends in a log line, not an error return.
func NewDispatcher(repo notification.Repository, userRepo user.UserRepository, hub *sse.Hub, logger *slog.Logger, cfg Config) notification.Dispatcher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
		config:   cfg,
		queue:    make(chan notification.TransitionEvent, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification dispatcher started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// Dispatch implements notification.Dispatcher. A full queue drops the event
// rather than stalling the caller.
func (s *service) Dispatch(event notification.TransitionEvent) {
	select {
	case s.queue <- event:
	default:
		s.logger.Warn("notification queue full, dropping event",
			"action", event.Action,
			"timesheet_id", event.TimesheetID,
		)
	}
}

// worker drains transition events, resolves recipients and flushes
// notification batches.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("failed to batch insert notifications",
				"worker", id,
				"count", len(batch),
				"error", err,
			)
		} else {
			for _, n := range batch {
				s.hub.Publish(n.RecipientID, sse.Event{
					UserID: n.RecipientID,
					Event:  "notification",
					Data:   s.toResponse(n),
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case event := <-s.queue:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			notifications, err := s.expand(ctx, event)
			cancel()
			if err != nil {
				s.logger.Error("failed to resolve notification recipients",
					"worker", id,
					"action", event.Action,
					"timesheet_id", event.TimesheetID,
					"error", err,
				)
				continue
			}
			batch = append(batch, notifications...)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			flush()
			return
		}
	}
}

// expand resolves a transition event into one notification per recipient.
func (s *service) expand(ctx context.Context, event notification.TransitionEvent) ([]*notification.Notification, error) {
	recipients, err := s.resolveRecipients(ctx, event)
	if err != nil {
		return nil, err
	}

	notificationType, title, message := composeContent(event)
	data := map[string]interface{}{
		"timesheet_id": event.TimesheetID,
		"shift_id":     event.ShiftID,
		"job_name":     event.JobName,
		"client_name":  event.ClientName,
		"shift_date":   event.ShiftDate,
		"action":       string(event.Action),
	}

	now := time.Now().UTC()
	notifications := make([]*notification.Notification, 0, len(recipients))
	for recipientID := range recipients {
		notifications = append(notifications, &notification.Notification{
			ID:          uuid.New().String(),
			RecipientID: recipientID,
			Type:        notificationType,
			Title:       title,
			Message:     message,
			Data:        data,
			IsRead:      false,
			CreatedAt:   now,
		})
	}

	return notifications, nil
}

// resolveRecipients maps a transition to the parties with a stake in its
// outcome. Submissions go to the reviewing client and the managers, client
// approvals to the managers, completions back to the client and crew chief,
// rejections to the crew chief who must fix the timesheet and the managers.
func (s *service) resolveRecipients(ctx context.Context, event notification.TransitionEvent) (map[string]struct{}, error) {
	recipients := make(map[string]struct{})

	addManagers := func() error {
		managers, err := s.userRepo.ListByRole(ctx, user.RoleManager)
		if err != nil {
			return fmt.Errorf("failed to list managers: %w", err)
		}
		for _, m := range managers {
			recipients[m.ID] = struct{}{}
		}
		return nil
	}
	addClientUsers := func() error {
		if event.ClientID == nil {
			return nil
		}
		clientUsers, err := s.userRepo.ListByClientID(ctx, *event.ClientID)
		if err != nil {
			return fmt.Errorf("failed to list client users: %w", err)
		}
		for _, c := range clientUsers {
			recipients[c.ID] = struct{}{}
		}
		return nil
	}
	addCrewChief := func() error {
		if event.CrewChiefEmployeeID == nil {
			return nil
		}
		chief, err := s.userRepo.GetByEmployeeID(ctx, *event.CrewChiefEmployeeID)
		if err != nil || !chief.IsCrewChief() {
			// a crew chief without a crew-chief login simply gets nothing
			return nil
		}
		recipients[chief.ID] = struct{}{}
		return nil
	}

	switch event.Action {
	case timesheet.ActionFinalize, timesheet.ActionResubmit:
		if err := addClientUsers(); err != nil {
			return nil, err
		}
		if err := addManagers(); err != nil {
			return nil, err
		}
	case timesheet.ActionClientApprove:
		if err := addManagers(); err != nil {
			return nil, err
		}
	case timesheet.ActionManagerApprove:
		if err := addClientUsers(); err != nil {
			return nil, err
		}
		if err := addCrewChief(); err != nil {
			return nil, err
		}
	case timesheet.ActionReject:
		if err := addCrewChief(); err != nil {
			return nil, err
		}
		if err := addManagers(); err != nil {
			return nil, err
		}
	}

	return recipients, nil
}

func composeContent(event notification.TransitionEvent) (notification.NotificationType, string, string) {
	subject := fmt.Sprintf("%s on %s", event.JobName, event.ShiftDate)

	switch event.Action {
	case timesheet.ActionClientApprove:
		return notification.TypeTimesheetClientApproved,
			"Timesheet approved by client",
			fmt.Sprintf("The timesheet for %s was approved by the client and awaits final approval.", subject)
	case timesheet.ActionManagerApprove:
		return notification.TypeTimesheetCompleted,
			"Timesheet completed",
			fmt.Sprintf("The timesheet for %s has been completed.", subject)
	case timesheet.ActionReject:
		reason := ""
		if event.Reason != nil {
			reason = ": " + *event.Reason
		}
		return notification.TypeTimesheetRejected,
			"Timesheet rejected",
			fmt.Sprintf("The timesheet for %s was rejected%s", subject, reason)
	default:
		return notification.TypeTimesheetSubmitted,
			"Timesheet submitted",
			fmt.Sprintf("The timesheet for %s is awaiting client approval.", subject)
	}
}

// toResponse converts a Notification entity to NotificationResponse
func (s *service) toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = s.toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					out <- notification.SSEEvent{
						Event: event.Event,
						Data:  resp,
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop gracefully stops the dispatcher, flushing queued batches
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("notification dispatcher stopped")
}
