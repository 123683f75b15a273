package timesheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/validator"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return errs.ToMap()
}

func TestFinalizeRequestValidate(t *testing.T) {
	req := FinalizeRequest{ShiftID: "123e4567-e89b-12d3-a456-426614174000"}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request failed: %v", err)
	}

	req = FinalizeRequest{}
	fields := validationFields(t, req.Validate())
	if _, ok := fields["shift_id"]; !ok {
		t.Error("expected shift_id error for empty request")
	}

	req = FinalizeRequest{ShiftID: "not-a-uuid"}
	fields = validationFields(t, req.Validate())
	if _, ok := fields["shift_id"]; !ok {
		t.Error("expected shift_id error for malformed id")
	}
}

func TestApproveRequestValidate(t *testing.T) {
	base := ApproveRequest{
		TimesheetID:    "123e4567-e89b-12d3-a456-426614174000",
		SignatureImage: append(append([]byte{}, pngHeader...), 0x01, 0x02),
		MaxImageBytes:  1024,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid request failed: %v", err)
	}

	t.Run("missing signature", func(t *testing.T) {
		req := base
		req.SignatureImage = nil
		fields := validationFields(t, req.Validate())
		if _, ok := fields["signature"]; !ok {
			t.Error("expected signature error")
		}
	})

	t.Run("oversized signature", func(t *testing.T) {
		req := base
		req.SignatureImage = append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
		fields := validationFields(t, req.Validate())
		if _, ok := fields["signature"]; !ok {
			t.Error("expected signature size error")
		}
	})

	t.Run("unsupported image format", func(t *testing.T) {
		req := base
		req.SignatureImage = []byte("GIF89a-not-a-signature")
		fields := validationFields(t, req.Validate())
		if _, ok := fields["signature"]; !ok {
			t.Error("expected signature format error")
		}
	})

	t.Run("missing timesheet id", func(t *testing.T) {
		req := base
		req.TimesheetID = ""
		fields := validationFields(t, req.Validate())
		if _, ok := fields["timesheet_id"]; !ok {
			t.Error("expected timesheet_id error")
		}
	})
}

func TestRejectRequestValidate(t *testing.T) {
	req := RejectRequest{TimesheetID: "123e4567-e89b-12d3-a456-426614174000", Reason: "hours look wrong"}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request failed: %v", err)
	}

	req.Reason = "   "
	fields := validationFields(t, req.Validate())
	if _, ok := fields["reason"]; !ok {
		t.Error("expected reason error for blank reason")
	}
}

func TestListFilterValidate(t *testing.T) {
	status := "completed"
	start := "2025-06-01"
	filter := ListFilter{Status: &status, StartDate: &start}
	if err := filter.Validate(); err != nil {
		t.Fatalf("valid filter failed: %v", err)
	}

	badStatus := "approved" // not a real status
	filter = ListFilter{Status: &badStatus}
	fields := validationFields(t, filter.Validate())
	if _, ok := fields["status"]; !ok {
		t.Error("expected status error")
	}

	badDate := "01-06-2025"
	filter = ListFilter{EndDate: &badDate}
	fields = validationFields(t, filter.Validate())
	if _, ok := fields["end_date"]; !ok {
		t.Error("expected end_date error")
	}
}

func TestStatusHelpers(t *testing.T) {
	if !StatusCompleted.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if StatusRejected.IsTerminal() {
		t.Error("rejected is not terminal, it can cycle through resubmission")
	}
	if !StatusPendingClientApproval.IsActive() || !StatusPendingFinalApproval.IsActive() {
		t.Error("pending statuses should be active")
	}
	if StatusCompleted.IsActive() || StatusRejected.IsActive() {
		t.Error("terminal and rejected statuses should not be active")
	}
}
