package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attestationRepository struct {
	db *database.DB
}

const attestationColumns = "id, timesheet_id, approval_type, actor_id, actor_role, image, image_sha256, content_type, captured_at"

func scanAttestation(row pgx.Row) (signature.Attestation, error) {
	var att signature.Attestation
	err := row.Scan(
		&att.ID, &att.TimesheetID, &att.ApprovalType, &att.ActorID, &att.ActorRole,
		&att.Image, &att.ImageSHA256, &att.ContentType, &att.CapturedAt,
	)
	return att, err
}

// Create implements signature.AttestationRepository.
func (r *attestationRepository) Create(ctx context.Context, att signature.Attestation) (signature.Attestation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO signature_attestations (timesheet_id, approval_type, actor_id, actor_role, image, image_sha256, content_type, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attestationColumns

	created, err := scanAttestation(q.QueryRow(ctx, query,
		att.TimesheetID, att.ApprovalType, att.ActorID, att.ActorRole,
		att.Image, att.ImageSHA256, att.ContentType, att.CapturedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return signature.Attestation{}, signature.ErrAlreadyCaptured
		}
		return signature.Attestation{}, fmt.Errorf("failed to create signature attestation: %w", err)
	}

	return created, nil
}

// GetByTimesheetAndType implements signature.AttestationRepository.
func (r *attestationRepository) GetByTimesheetAndType(ctx context.Context, timesheetID string, approvalType signature.ApprovalType) (signature.Attestation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attestationColumns + ` FROM signature_attestations WHERE timesheet_id = $1 AND approval_type = $2`

	att, err := scanAttestation(q.QueryRow(ctx, query, timesheetID, approvalType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return signature.Attestation{}, signature.ErrAttestationNotFound
		}
		return signature.Attestation{}, fmt.Errorf("failed to get signature attestation: %w", err)
	}

	return att, nil
}

// DeleteByTimesheet implements signature.AttestationRepository.
func (r *attestationRepository) DeleteByTimesheet(ctx context.Context, timesheetID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM signature_attestations WHERE timesheet_id = $1`, timesheetID)
	if err != nil {
		return fmt.Errorf("failed to delete signature attestations: %w", err)
	}

	return nil
}

func NewAttestationRepository(db *database.DB) signature.AttestationRepository {
	return &attestationRepository{db: db}
}
