package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/timesheet"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timesheetRepository struct {
	db *database.DB
}

const timesheetColumns = "id, shift_id, status, client_approved_at, client_signature_id, manager_approved_at, manager_signature_id, rejection_reason, rejected_by, rejected_at, pdf_artifact_id, created_at, updated_at"

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.ShiftID, &ts.Status, &ts.ClientApprovedAt, &ts.ClientSignatureID,
		&ts.ManagerApprovedAt, &ts.ManagerSignatureID, &ts.RejectionReason, &ts.RejectedBy, &ts.RejectedAt,
		&ts.PDFArtifactID, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

// CreateForShift implements timesheet.TimesheetRepository.
// The INSERT is guarded against an existing active timesheet both by the
// WHERE NOT EXISTS clause and by the partial unique index on shift_id, so
// exactly one of N concurrent finalize attempts wins.
func (r *timesheetRepository) CreateForShift(ctx context.Context, shiftID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (shift_id, status)
		SELECT $1, 'pending_client_approval'
		WHERE NOT EXISTS (
			SELECT 1 FROM timesheets
			WHERE shift_id = $1
			  AND status NOT IN ('completed', 'rejected')
		)
		RETURNING ` + timesheetColumns

	ts, err := scanTimesheet(q.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrActiveTimesheetExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timesheet.Timesheet{}, timesheet.ErrActiveTimesheetExists
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = $1`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return ts, nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.ListFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		baseWhere += fmt.Sprintf(" AND t.shift_id = $%d", argIdx)
		args = append(args, *filter.ShiftID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.CrewChiefEmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND s.crew_chief_id = $%d", argIdx)
		args = append(args, *filter.CrewChiefEmployeeID)
		argIdx++
	}
	if filter.ClientID != nil {
		baseWhere += fmt.Sprintf(" AND j.client_id = $%d", argIdx)
		args = append(args, *filter.ClientID)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM timesheets t
		JOIN shifts s ON s.id = t.shift_id
		JOIN jobs j ON j.id = s.job_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	orderByField := "t.created_at"
	switch filter.SortBy {
	case "status":
		orderByField = "t.status"
	case "updated_at":
		orderByField = "t.updated_at"
	case "date":
		orderByField = "s.date"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	columns := "t." + strings.ReplaceAll(timesheetColumns, ", ", ", t.")
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM timesheets t
		JOIN shifts s ON s.id = t.shift_id
		JOIN jobs j ON j.id = s.job_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, columns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}

	return timesheets, total, rows.Err()
}

// UpdateStatusIf implements timesheet.TimesheetRepository.
// The conditional WHERE clause is the whole concurrency story: when another
// actor already moved the row, zero rows match and the caller gets
// ErrStaleState with no partial effects.
func (r *timesheetRepository) UpdateStatusIf(ctx context.Context, id string, expected, next timesheet.Status, update timesheet.StatusUpdate) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"status = $1", "updated_at = NOW()"}
	args := []interface{}{next}
	argIdx := 2

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if update.ClientApprovedAt != nil {
		appendSet("client_approved_at", update.ClientApprovedAt)
	}
	if update.ClientSignatureID != nil {
		appendSet("client_signature_id", update.ClientSignatureID)
	}
	if update.ManagerApprovedAt != nil {
		appendSet("manager_approved_at", update.ManagerApprovedAt)
	}
	if update.ManagerSignatureID != nil {
		appendSet("manager_signature_id", update.ManagerSignatureID)
	}
	if update.RejectionReason != nil {
		appendSet("rejection_reason", update.RejectionReason)
	}
	if update.RejectedBy != nil {
		appendSet("rejected_by", update.RejectedBy)
	}
	if update.RejectedAt != nil {
		appendSet("rejected_at", update.RejectedAt)
	}
	if update.PDFArtifactID != nil {
		appendSet("pdf_artifact_id", update.PDFArtifactID)
	}
	if update.ClearSignatures {
		sets = append(sets,
			"client_approved_at = NULL",
			"client_signature_id = NULL",
			"manager_approved_at = NULL",
			"manager_signature_id = NULL",
		)
	}

	args = append(args, id, expected)
	query := fmt.Sprintf(
		"UPDATE timesheets SET %s WHERE id = $%d AND status = $%d",
		strings.Join(sets, ", "), argIdx, argIdx+1,
	)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update timesheet status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return timesheet.ErrStaleState
	}

	return nil
}

// AppendTransition implements timesheet.TimesheetRepository.
func (r *timesheetRepository) AppendTransition(ctx context.Context, t timesheet.Transition) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_transitions (timesheet_id, action, from_status, to_status, actor_id, actor_role, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		t.TimesheetID, t.Action, t.FromStatus, t.ToStatus, t.ActorID, t.ActorRole, t.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to append timesheet transition: %w", err)
	}

	return nil
}

// ListTransitions implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListTransitions(ctx context.Context, timesheetID string) ([]timesheet.Transition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, timesheet_id, action, from_status, to_status, actor_id, actor_role, reason, created_at
		FROM timesheet_transitions
		WHERE timesheet_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet transitions: %w", err)
	}
	defer rows.Close()

	var transitions []timesheet.Transition
	for rows.Next() {
		var t timesheet.Transition
		err := rows.Scan(
			&t.ID, &t.TimesheetID, &t.Action, &t.FromStatus, &t.ToStatus,
			&t.ActorID, &t.ActorRole, &t.Reason, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet transition: %w", err)
		}
		transitions = append(transitions, t)
	}

	return transitions, rows.Err()
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}
