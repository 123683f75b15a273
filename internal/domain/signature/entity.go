package signature

import (
	"time"
)

type ApprovalType string

const (
	ApprovalTypeClient  ApprovalType = "client"
	ApprovalTypeManager ApprovalType = "manager"
)

// Attestation is an immutable record of a human approval: the raw signature
// image plus actor and capture metadata. Created once per approval event,
// never mutated.
type Attestation struct {
	ID           string
	TimesheetID  string
	ApprovalType ApprovalType
	ActorID      string
	ActorRole    string
	Image        []byte
	ImageSHA256  string
	ContentType  string
	CapturedAt   time.Time
}
