package document

import (
	"context"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
)

// RenderInput is the full aggregate the pipeline renders from. Rendering is
// a pure function of this value: identical input produces identical bytes.
type RenderInput struct {
	OrgName          string
	TimesheetID      string
	Shift            shift.Shift
	Personnel        []shift.AssignedPersonnel
	ClientSignature  signature.Attestation
	ManagerSignature signature.Attestation
}

// Renderer produces the timesheet PDF. The context bounds generation time;
// exceeding it fails the whole completed transition.
type Renderer interface {
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}
