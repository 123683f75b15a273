package timesheet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/document"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/notification"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/user"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/validator"
	"github.com/crewtrack/crewtrack-backend-go/internal/repository/postgresql"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.TimesheetRepository
	shift.ShiftRepository
	signature.AttestationRepository
	document.ArtifactRepository

	renderer   document.Renderer
	dispatcher notification.Dispatcher

	orgName           string
	maxSignatureBytes int64
	generationTimeout time.Duration
}

// timePtrToRFC3339 safely converts a *time.Time to a formatted string.
func timePtrToRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

func canViewTimesheet(actor user.Actor, sh shift.Shift) bool {
	switch actor.Role {
	case user.RoleManager:
		return true
	case user.RoleCrewChief:
		return actor.EmployeeID != nil && sh.CrewChiefID != nil && *actor.EmployeeID == *sh.CrewChiefID
	case user.RoleClient:
		return actor.ClientID != nil && sh.ClientID != nil && *actor.ClientID == *sh.ClientID
	}
	return false
}

func isShiftClient(actor user.Actor, sh shift.Shift) bool {
	return actor.Role == user.RoleClient &&
		actor.ClientID != nil && sh.ClientID != nil && *actor.ClientID == *sh.ClientID
}

func isShiftCrewChief(actor user.Actor, sh shift.Shift) bool {
	return actor.Role == user.RoleCrewChief &&
		actor.EmployeeID != nil && sh.CrewChiefID != nil && *actor.EmployeeID == *sh.CrewChiefID
}

func hashSignature(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// Finalize implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Finalize(ctx context.Context, req timesheet.FinalizeRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if actor.Role != user.RoleManager && !isShiftCrewChief(actor, sh) {
		return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
	}

	switch sh.Status {
	case shift.StatusCancelled:
		return timesheet.TimesheetResponse{}, shift.ErrShiftCancelled
	case shift.StatusInProgress:
		// only an in-progress shift can be finalized into a timesheet
	default:
		return timesheet.TimesheetResponse{}, shift.ErrShiftNotFinalized
	}

	var ts timesheet.Timesheet
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var txErr error
		ts, txErr = s.TimesheetRepository.CreateForShift(txCtx, sh.ID)
		if txErr != nil {
			return txErr
		}
		return s.TimesheetRepository.AppendTransition(txCtx, timesheet.Transition{
			TimesheetID: ts.ID,
			Action:      timesheet.ActionFinalize,
			ToStatus:    timesheet.StatusPendingClientApproval,
			ActorID:     actor.UserID,
			ActorRole:   string(actor.Role),
		})
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.dispatcher.Dispatch(s.transitionEvent(timesheet.ActionFinalize, ts, sh, nil))

	return s.buildResponse(ctx, ts, sh, false)
}

// ClientApprove implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ClientApprove(ctx context.Context, req timesheet.ApproveRequest) (timesheet.TimesheetResponse, error) {
	return s.approve(ctx, req, signature.ApprovalTypeClient)
}

// ManagerApprove implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ManagerApprove(ctx context.Context, req timesheet.ApproveRequest) (timesheet.TimesheetResponse, error) {
	return s.approve(ctx, req, signature.ApprovalTypeManager)
}

func (s *TimesheetServiceImpl) approve(ctx context.Context, req timesheet.ApproveRequest, approvalType signature.ApprovalType) (timesheet.TimesheetResponse, error) {
	if req.MaxImageBytes == 0 {
		req.MaxImageBytes = s.maxSignatureBytes
	}
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, req.TimesheetID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	switch approvalType {
	case signature.ApprovalTypeClient:
		// a manager or the shift's crew chief may approve on the client's
		// behalf; the attestation keeps the acting party
		if actor.Role != user.RoleManager && !isShiftClient(actor, sh) && !isShiftCrewChief(actor, sh) {
			return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
		}
	case signature.ApprovalTypeManager:
		if actor.Role != user.RoleManager {
			return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
		}
	}

	imageHash := hashSignature(req.SignatureImage)

	// A replay of the exact same signature is a no-op success; a different
	// second signature for the same approval slot is a conflict.
	existing, err := s.AttestationRepository.GetByTimesheetAndType(ctx, ts.ID, approvalType)
	if err == nil {
		if existing.ImageSHA256 == imageHash {
			return s.buildResponse(ctx, ts, sh, true)
		}
		return timesheet.TimesheetResponse{}, signature.ErrAlreadyCaptured
	}
	if !errors.Is(err, signature.ErrAttestationNotFound) {
		return timesheet.TimesheetResponse{}, err
	}

	expectedStatus := timesheet.StatusPendingClientApproval
	if approvalType == signature.ApprovalTypeManager {
		expectedStatus = timesheet.StatusPendingFinalApproval
	}
	if ts.Status != expectedStatus {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidTransition
	}

	now := time.Now().UTC().Truncate(time.Second)
	att := signature.Attestation{
		TimesheetID:  ts.ID,
		ApprovalType: approvalType,
		ActorID:      actor.UserID,
		ActorRole:    string(actor.Role),
		Image:        req.SignatureImage,
		ImageSHA256:  imageHash,
		ContentType:  validator.SniffImageContentType(req.SignatureImage),
		CapturedAt:   now,
	}

	if approvalType == signature.ApprovalTypeManager {
		return s.complete(ctx, actor, ts, sh, att, now)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, txErr := s.AttestationRepository.Create(txCtx, att)
		if txErr != nil {
			return txErr
		}
		update := timesheet.StatusUpdate{
			ClientApprovedAt:  &now,
			ClientSignatureID: &created.ID,
		}
		if txErr := s.TimesheetRepository.UpdateStatusIf(txCtx, ts.ID,
			timesheet.StatusPendingClientApproval, timesheet.StatusPendingFinalApproval, update); txErr != nil {
			return txErr
		}
		from := ts.Status
		return s.TimesheetRepository.AppendTransition(txCtx, timesheet.Transition{
			TimesheetID: ts.ID,
			Action:      timesheet.ActionClientApprove,
			FromStatus:  &from,
			ToStatus:    timesheet.StatusPendingFinalApproval,
			ActorID:     actor.UserID,
			ActorRole:   string(actor.Role),
		})
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.dispatcher.Dispatch(s.transitionEvent(timesheet.ActionClientApprove, ts, sh, nil))

	ts, err = s.TimesheetRepository.GetByID(ctx, ts.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return s.buildResponse(ctx, ts, sh, true)
}

// complete runs the terminal transition: manager signature, PDF generation,
// status move and shift sync commit or roll back together, so a completed
// timesheet always has its document.
func (s *TimesheetServiceImpl) complete(ctx context.Context, actor user.Actor, ts timesheet.Timesheet, sh shift.Shift, managerAtt signature.Attestation, now time.Time) (timesheet.TimesheetResponse, error) {
	clientAtt, err := s.AttestationRepository.GetByTimesheetAndType(ctx, ts.ID, signature.ApprovalTypeClient)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to load client attestation: %w", err)
	}

	personnel, err := s.ShiftRepository.GetPersonnelWithEntries(ctx, sh.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	renderCtx, cancel := context.WithTimeout(ctx, s.generationTimeout)
	defer cancel()

	pdfBytes, err := s.renderer.Render(renderCtx, document.RenderInput{
		OrgName:          s.orgName,
		TimesheetID:      ts.ID,
		Shift:            sh,
		Personnel:        personnel,
		ClientSignature:  clientAtt,
		ManagerSignature: managerAtt,
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("%w: %v", document.ErrGenerationFailed, err)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		createdAtt, txErr := s.AttestationRepository.Create(txCtx, managerAtt)
		if txErr != nil {
			return txErr
		}
		artifact, txErr := s.ArtifactRepository.Create(txCtx, document.PDFArtifact{
			TimesheetID: ts.ID,
			Content:     pdfBytes,
			ContentType: "application/pdf",
		})
		if txErr != nil {
			return txErr
		}
		update := timesheet.StatusUpdate{
			ManagerApprovedAt:  &now,
			ManagerSignatureID: &createdAtt.ID,
			PDFArtifactID:      &artifact.ID,
		}
		if txErr := s.TimesheetRepository.UpdateStatusIf(txCtx, ts.ID,
			timesheet.StatusPendingFinalApproval, timesheet.StatusCompleted, update); txErr != nil {
			return txErr
		}
		if txErr := s.ShiftRepository.MarkCompleted(txCtx, sh.ID); txErr != nil {
			return txErr
		}
		from := ts.Status
		return s.TimesheetRepository.AppendTransition(txCtx, timesheet.Transition{
			TimesheetID: ts.ID,
			Action:      timesheet.ActionManagerApprove,
			FromStatus:  &from,
			ToStatus:    timesheet.StatusCompleted,
			ActorID:     actor.UserID,
			ActorRole:   string(actor.Role),
		})
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.dispatcher.Dispatch(s.transitionEvent(timesheet.ActionManagerApprove, ts, sh, nil))

	ts, err = s.TimesheetRepository.GetByID(ctx, ts.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	sh.Status = shift.StatusCompleted
	return s.buildResponse(ctx, ts, sh, true)
}

// Reject implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, req timesheet.RejectRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, req.TimesheetID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if actor.Role != user.RoleManager && !isShiftClient(actor, sh) && !isShiftCrewChief(actor, sh) {
		return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
	}

	if !ts.Status.IsActive() {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidTransition
	}

	// clients and crew chiefs only review the first stage; once the timesheet
	// reached the manager, rejection is the manager's call
	if ts.Status == timesheet.StatusPendingFinalApproval && actor.Role != user.RoleManager {
		return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		update := timesheet.StatusUpdate{
			RejectionReason: &req.Reason,
			RejectedBy:      &actor.UserID,
			RejectedAt:      &now,
		}
		if txErr := s.TimesheetRepository.UpdateStatusIf(txCtx, ts.ID,
			ts.Status, timesheet.StatusRejected, update); txErr != nil {
			return txErr
		}
		from := ts.Status
		return s.TimesheetRepository.AppendTransition(txCtx, timesheet.Transition{
			TimesheetID: ts.ID,
			Action:      timesheet.ActionReject,
			FromStatus:  &from,
			ToStatus:    timesheet.StatusRejected,
			ActorID:     actor.UserID,
			ActorRole:   string(actor.Role),
			Reason:      &req.Reason,
		})
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.dispatcher.Dispatch(s.transitionEvent(timesheet.ActionReject, ts, sh, &req.Reason))

	ts, err = s.TimesheetRepository.GetByID(ctx, ts.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return s.buildResponse(ctx, ts, sh, true)
}

// Resubmit implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Resubmit(ctx context.Context, timesheetID string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, timesheetID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if actor.Role != user.RoleManager && !isShiftCrewChief(actor, sh) {
		return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
	}

	if ts.Status != timesheet.StatusRejected {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidTransition
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// clear the signature references first: the timesheet row points at
		// the attestation rows, so deleting them while still referenced
		// would trip the foreign keys
		update := timesheet.StatusUpdate{ClearSignatures: true}
		if txErr := s.TimesheetRepository.UpdateStatusIf(txCtx, ts.ID,
			timesheet.StatusRejected, timesheet.StatusPendingClientApproval, update); txErr != nil {
			return txErr
		}
		// stale signatures must never satisfy the next approval cycle
		if txErr := s.AttestationRepository.DeleteByTimesheet(txCtx, ts.ID); txErr != nil {
			return txErr
		}
		from := ts.Status
		return s.TimesheetRepository.AppendTransition(txCtx, timesheet.Transition{
			TimesheetID: ts.ID,
			Action:      timesheet.ActionResubmit,
			FromStatus:  &from,
			ToStatus:    timesheet.StatusPendingClientApproval,
			ActorID:     actor.UserID,
			ActorRole:   string(actor.Role),
		})
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.dispatcher.Dispatch(s.transitionEvent(timesheet.ActionResubmit, ts, sh, nil))

	ts, err = s.TimesheetRepository.GetByID(ctx, ts.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return s.buildResponse(ctx, ts, sh, true)
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if !canViewTimesheet(actor, sh) {
		return timesheet.TimesheetResponse{}, timesheet.ErrPermissionDenied
	}

	return s.buildResponse(ctx, ts, sh, true)
}

// ListTimesheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, filter timesheet.ListFilter) (timesheet.ListTimesheetsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}

	switch actor.Role {
	case user.RoleManager:
		// managers see everything
	case user.RoleCrewChief:
		if actor.EmployeeID == nil {
			return timesheet.ListTimesheetsResponse{}, timesheet.ErrPermissionDenied
		}
		filter.CrewChiefEmployeeID = actor.EmployeeID
	case user.RoleClient:
		if actor.ClientID == nil {
			return timesheet.ListTimesheetsResponse{}, timesheet.ErrPermissionDenied
		}
		filter.ClientID = actor.ClientID
	default:
		return timesheet.ListTimesheetsResponse{}, timesheet.ErrPermissionDenied
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	timesheets, total, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetsResponse{}, err
	}

	items := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
		if err != nil {
			return timesheet.ListTimesheetsResponse{}, err
		}
		item, err := s.buildResponse(ctx, ts, sh, false)
		if err != nil {
			return timesheet.ListTimesheetsResponse{}, err
		}
		items = append(items, item)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return timesheet.ListTimesheetsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Timesheets: items,
	}, nil
}

// GetPDF implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetPDF(ctx context.Context, id string) ([]byte, string, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	sh, err := s.ShiftRepository.GetByID(ctx, ts.ShiftID)
	if err != nil {
		return nil, "", err
	}

	if !canViewTimesheet(actor, sh) {
		return nil, "", timesheet.ErrPermissionDenied
	}

	if ts.Status != timesheet.StatusCompleted {
		return nil, "", timesheet.ErrPDFNotAvailable
	}

	artifact, err := s.ArtifactRepository.GetByTimesheetID(ctx, ts.ID)
	if err != nil {
		return nil, "", err
	}

	return artifact.Content, artifact.ContentType, nil
}

func (s *TimesheetServiceImpl) transitionEvent(action timesheet.Action, ts timesheet.Timesheet, sh shift.Shift, reason *string) notification.TransitionEvent {
	event := notification.TransitionEvent{
		Action:              action,
		TimesheetID:         ts.ID,
		ShiftID:             sh.ID,
		ShiftDate:           sh.Date.Format("2006-01-02"),
		ClientID:            sh.ClientID,
		CrewChiefEmployeeID: sh.CrewChiefID,
		Reason:              reason,
	}
	if sh.JobName != nil {
		event.JobName = *sh.JobName
	}
	if sh.ClientName != nil {
		event.ClientName = *sh.ClientName
	}
	return event
}

func signatureMeta(att signature.Attestation) *timesheet.SignatureMeta {
	return &timesheet.SignatureMeta{
		ID:           att.ID,
		ApprovalType: string(att.ApprovalType),
		ActorID:      att.ActorID,
		ActorRole:    att.ActorRole,
		ContentType:  att.ContentType,
		CapturedAt:   att.CapturedAt.UTC().Format(time.RFC3339),
	}
}

// buildResponse assembles the typed projection. detail adds signature
// metadata, PDF metadata and the transition log on top of the list shape.
func (s *TimesheetServiceImpl) buildResponse(ctx context.Context, ts timesheet.Timesheet, sh shift.Shift, detail bool) (timesheet.TimesheetResponse, error) {
	personnel, err := s.ShiftRepository.GetPersonnelWithEntries(ctx, ts.ShiftID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	var totalHours float64
	personnelResp := make([]timesheet.PersonnelResponse, 0, len(personnel))
	for _, p := range personnel {
		entries := make([]timesheet.TimeEntryResponse, 0, len(p.TimeEntries))
		for _, e := range p.TimeEntries {
			entries = append(entries, timesheet.TimeEntryResponse{
				EntryNumber: e.EntryNumber,
				ClockIn:     e.ClockIn.UTC().Format(time.RFC3339),
				ClockOut:    timePtrToRFC3339(e.ClockOut),
			})
		}
		hours := shift.TotalHours(p.TimeEntries)
		totalHours += hours

		employeeName := ""
		if p.EmployeeName != nil {
			employeeName = *p.EmployeeName
		}
		personnelResp = append(personnelResp, timesheet.PersonnelResponse{
			EmployeeID:   p.EmployeeID,
			EmployeeName: employeeName,
			RoleCode:     p.RoleCode,
			TimeEntries:  entries,
			TotalHours:   hours,
		})
	}
	totalHours = math.Round(totalHours*100) / 100

	summary := timesheet.ShiftSummary{
		ID:          sh.ID,
		Date:        sh.Date.Format("2006-01-02"),
		StartTime:   sh.StartTime.UTC().Format("15:04"),
		EndTime:     sh.EndTime.UTC().Format("15:04"),
		Location:    sh.Location,
		CrewChief:   sh.CrewChiefName,
		ShiftStatus: string(sh.Status),
	}
	if sh.JobName != nil {
		summary.JobName = *sh.JobName
	}
	if sh.ClientName != nil {
		summary.ClientName = *sh.ClientName
	}

	resp := timesheet.TimesheetResponse{
		ID:                ts.ID,
		Status:            ts.Status,
		Shift:             summary,
		Personnel:         personnelResp,
		TotalHours:        totalHours,
		ClientApprovedAt:  timePtrToRFC3339(ts.ClientApprovedAt),
		ManagerApprovedAt: timePtrToRFC3339(ts.ManagerApprovedAt),
		RejectionReason:   ts.RejectionReason,
		RejectedBy:        ts.RejectedBy,
		CreatedAt:         ts.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         ts.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if !detail {
		return resp, nil
	}

	clientAtt, err := s.AttestationRepository.GetByTimesheetAndType(ctx, ts.ID, signature.ApprovalTypeClient)
	if err == nil {
		resp.ClientSignature = signatureMeta(clientAtt)
	} else if !errors.Is(err, signature.ErrAttestationNotFound) {
		return timesheet.TimesheetResponse{}, err
	}

	managerAtt, err := s.AttestationRepository.GetByTimesheetAndType(ctx, ts.ID, signature.ApprovalTypeManager)
	if err == nil {
		resp.ManagerSignature = signatureMeta(managerAtt)
	} else if !errors.Is(err, signature.ErrAttestationNotFound) {
		return timesheet.TimesheetResponse{}, err
	}

	if ts.PDFArtifactID != nil {
		artifact, err := s.ArtifactRepository.GetMetaByTimesheetID(ctx, ts.ID)
		if err != nil && !errors.Is(err, document.ErrArtifactNotFound) {
			return timesheet.TimesheetResponse{}, err
		}
		if err == nil {
			resp.PDF = &timesheet.PDFMeta{
				ID:          artifact.ID,
				ByteSize:    artifact.ByteSize,
				ContentType: artifact.ContentType,
				GeneratedAt: artifact.GeneratedAt.UTC().Format(time.RFC3339),
			}
		}
	}

	transitions, err := s.TimesheetRepository.ListTransitions(ctx, ts.ID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	transitionResp := make([]timesheet.TransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		var fromStatus *string
		if t.FromStatus != nil {
			from := string(*t.FromStatus)
			fromStatus = &from
		}
		transitionResp = append(transitionResp, timesheet.TransitionResponse{
			Action:     string(t.Action),
			FromStatus: fromStatus,
			ToStatus:   string(t.ToStatus),
			ActorID:    t.ActorID,
			ActorRole:  t.ActorRole,
			Reason:     t.Reason,
			CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	resp.Transitions = transitionResp

	return resp, nil
}

func NewTimesheetService(
	db *database.DB,
	timesheetRepo timesheet.TimesheetRepository,
	shiftRepo shift.ShiftRepository,
	attestationRepo signature.AttestationRepository,
	artifactRepo document.ArtifactRepository,
	renderer document.Renderer,
	dispatcher notification.Dispatcher,
	orgName string,
	maxSignatureBytes int64,
	generationTimeout time.Duration,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                    db,
		TimesheetRepository:   timesheetRepo,
		ShiftRepository:       shiftRepo,
		AttestationRepository: attestationRepo,
		ArtifactRepository:    artifactRepo,
		renderer:              renderer,
		dispatcher:            dispatcher,
		orgName:               orgName,
		maxSignatureBytes:     maxSignatureBytes,
		generationTimeout:     generationTimeout,
	}
}
