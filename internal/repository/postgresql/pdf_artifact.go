package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/document"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type artifactRepository struct {
	db *database.DB
}

// Create implements document.ArtifactRepository.
func (r *artifactRepository) Create(ctx context.Context, artifact document.PDFArtifact) (document.PDFArtifact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pdf_artifacts (timesheet_id, content, content_type, byte_size)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timesheet_id, content, content_type, byte_size, generated_at
	`

	var created document.PDFArtifact
	err := q.QueryRow(ctx, query,
		artifact.TimesheetID, artifact.Content, artifact.ContentType, len(artifact.Content),
	).Scan(
		&created.ID, &created.TimesheetID, &created.Content,
		&created.ContentType, &created.ByteSize, &created.GeneratedAt,
	)
	if err != nil {
		return document.PDFArtifact{}, fmt.Errorf("failed to create pdf artifact: %w", err)
	}

	return created, nil
}

// GetByTimesheetID implements document.ArtifactRepository.
func (r *artifactRepository) GetByTimesheetID(ctx context.Context, timesheetID string) (document.PDFArtifact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, timesheet_id, content, content_type, byte_size, generated_at
		FROM pdf_artifacts
		WHERE timesheet_id = $1
	`

	var artifact document.PDFArtifact
	err := q.QueryRow(ctx, query, timesheetID).Scan(
		&artifact.ID, &artifact.TimesheetID, &artifact.Content,
		&artifact.ContentType, &artifact.ByteSize, &artifact.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.PDFArtifact{}, document.ErrArtifactNotFound
		}
		return document.PDFArtifact{}, fmt.Errorf("failed to get pdf artifact: %w", err)
	}

	return artifact, nil
}

// GetMetaByTimesheetID implements document.ArtifactRepository. The content
// column is skipped so listing views never drag document bytes around.
func (r *artifactRepository) GetMetaByTimesheetID(ctx context.Context, timesheetID string) (document.PDFArtifact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, timesheet_id, content_type, byte_size, generated_at
		FROM pdf_artifacts
		WHERE timesheet_id = $1
	`

	var artifact document.PDFArtifact
	err := q.QueryRow(ctx, query, timesheetID).Scan(
		&artifact.ID, &artifact.TimesheetID,
		&artifact.ContentType, &artifact.ByteSize, &artifact.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.PDFArtifact{}, document.ErrArtifactNotFound
		}
		return document.PDFArtifact{}, fmt.Errorf("failed to get pdf artifact meta: %w", err)
	}

	return artifact, nil
}

func NewArtifactRepository(db *database.DB) document.ArtifactRepository {
	return &artifactRepository{db: db}
}
