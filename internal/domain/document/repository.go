package document

import (
	"context"
)

type ArtifactRepository interface {
	Create(ctx context.Context, artifact PDFArtifact) (PDFArtifact, error)
	GetByTimesheetID(ctx context.Context, timesheetID string) (PDFArtifact, error)
	GetMetaByTimesheetID(ctx context.Context, timesheetID string) (PDFArtifact, error)
}
