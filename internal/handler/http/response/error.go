package response

import (
	"errors"
	"net/http"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/auth"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/document"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/notification"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/user"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Permission errors
	case errors.Is(err, timesheet.ErrPermissionDenied):
		Forbidden(w, "You are not permitted to perform this operation")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Not found
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, signature.ErrAttestationNotFound):
		NotFound(w, "Signature attestation not found")
	case errors.Is(err, document.ErrArtifactNotFound):
		NotFound(w, "Timesheet PDF not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// State conflicts
	case errors.Is(err, timesheet.ErrActiveTimesheetExists):
		Conflict(w, "An active timesheet already exists for this shift")
	case errors.Is(err, timesheet.ErrStaleState):
		Conflict(w, "The timesheet was updated by another user, please reload and try again")
	case errors.Is(err, timesheet.ErrInvalidTransition):
		Conflict(w, "This operation is not allowed from the current timesheet status")
	case errors.Is(err, timesheet.ErrPDFNotAvailable):
		Conflict(w, "The timesheet PDF is only available once the timesheet is completed")
	case errors.Is(err, signature.ErrAlreadyCaptured):
		Conflict(w, "A different signature is already recorded for this approval")
	case errors.Is(err, shift.ErrShiftNotFinalized):
		Conflict(w, "The shift is not ready for timesheet finalization")
	case errors.Is(err, shift.ErrShiftCancelled):
		Conflict(w, "The shift has been cancelled")

	case errors.Is(err, timesheet.ErrRejectionReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)

	case errors.Is(err, document.ErrGenerationFailed):
		InternalServerError(w, "Timesheet PDF generation failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
