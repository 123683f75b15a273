package signature

import (
	"context"
)

type AttestationRepository interface {
	Create(ctx context.Context, att Attestation) (Attestation, error)
	GetByTimesheetAndType(ctx context.Context, timesheetID string, approvalType ApprovalType) (Attestation, error)

	// DeleteByTimesheet discards attestations on resubmission so a stale
	// signature can never satisfy the next approval cycle.
	DeleteByTimesheet(ctx context.Context, timesheetID string) error
}
