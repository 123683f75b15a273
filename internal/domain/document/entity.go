package document

import (
	"time"
)

// PDFArtifact is the immutable snapshot document generated when a timesheet
// completes. Reads are idempotent retrievals; the content is never
// regenerated.
type PDFArtifact struct {
	ID          string
	TimesheetID string
	Content     []byte
	ContentType string
	ByteSize    int
	GeneratedAt time.Time
}
