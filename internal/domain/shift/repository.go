package shift

import (
	"context"
)

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
	GetPersonnelWithEntries(ctx context.Context, shiftID string) ([]AssignedPersonnel, error)

	// MarkCompleted sets the shift status to completed. It is the only code
	// path allowed to do so and runs inside the manager-approval transaction.
	MarkCompleted(ctx context.Context, id string) error
}
