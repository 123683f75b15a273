package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// TimesheetHandler defines the timesheet handler interface
type TimesheetHandler interface {
	Finalize(w http.ResponseWriter, r *http.Request)
	ClientApprove(w http.ResponseWriter, r *http.Request)
	ManagerApprove(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Resubmit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService  timesheet.TimesheetService
	maxSignatureBytes int64
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, maxSignatureBytes int64) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService:  timesheetService,
		maxSignatureBytes: maxSignatureBytes,
	}
}

// signatureRequest carries a base64-encoded signature image
type signatureRequest struct {
	SignatureImage string `json:"signature_image"`
}

// decodeSignature reads and decodes the signature payload. The body limit
// leaves headroom for base64 expansion; the service enforces the exact
// image-size cap.
func (h *timesheetHandlerImpl) decodeSignature(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSignatureBytes*2)

	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	image, err := base64.StdEncoding.DecodeString(req.SignatureImage)
	if err != nil {
		response.BadRequest(w, "signature_image must be base64 encoded", nil)
		return nil, false
	}

	return image, true
}

// Finalize creates a timesheet for a shift
func (h *timesheetHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req timesheet.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Finalize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet submitted for client approval", result)
}

// ClientApprove records the client signature and advances the timesheet
func (h *timesheetHandlerImpl) ClientApprove(w http.ResponseWriter, r *http.Request) {
	image, ok := h.decodeSignature(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.ClientApprove(r.Context(), timesheet.ApproveRequest{
		TimesheetID:    chi.URLParam(r, "id"),
		SignatureImage: image,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", result)
}

// ManagerApprove records the manager signature and completes the timesheet
func (h *timesheetHandlerImpl) ManagerApprove(w http.ResponseWriter, r *http.Request) {
	image, ok := h.decodeSignature(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.ManagerApprove(r.Context(), timesheet.ApproveRequest{
		TimesheetID:    chi.URLParam(r, "id"),
		SignatureImage: image,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet completed", result)
}

// Reject moves a pending timesheet to rejected
func (h *timesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req timesheet.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.TimesheetID = chi.URLParam(r, "id")

	result, err := h.timesheetService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rejected", result)
}

// Resubmit cycles a rejected timesheet back into approval
func (h *timesheetHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Resubmit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet resubmitted for client approval", result)
}

// GetByID returns the full timesheet projection
func (h *timesheetHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List returns timesheets visible to the authenticated actor
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := timesheet.ListFilter{
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if shiftID := query.Get("shift_id"); shiftID != "" {
		filter.ShiftID = &shiftID
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.timesheetService.ListTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadPDF streams the completed timesheet document
func (h *timesheetHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	content, contentType, err := h.timesheetService.GetPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="timesheet-%s.pdf"`, id))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
	_, _ = w.Write(content)
}
