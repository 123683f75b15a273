package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.job_id, s.date, s.start_time, s.end_time, s.location,
		       s.requested_workers, s.crew_chief_id, s.status, s.created_at, s.updated_at,
		       j.name AS job_name,
		       j.client_id,
		       c.name AS client_name,
		       e.full_name AS crew_chief_name
		FROM shifts s
		JOIN jobs j ON j.id = s.job_id
		JOIN clients c ON c.id = j.client_id
		LEFT JOIN employees e ON e.id = s.crew_chief_id
		WHERE s.id = $1
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&sh.ID, &sh.JobID, &sh.Date, &sh.StartTime, &sh.EndTime, &sh.Location,
		&sh.RequestedWorkers, &sh.CrewChiefID, &sh.Status, &sh.CreatedAt, &sh.UpdatedAt,
		&sh.JobName, &sh.ClientID, &sh.ClientName, &sh.CrewChiefName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return sh, nil
}

// GetPersonnelWithEntries implements shift.ShiftRepository.
func (r *shiftRepository) GetPersonnelWithEntries(ctx context.Context, shiftID string) ([]shift.AssignedPersonnel, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ap.id, ap.shift_id, ap.employee_id, ap.role_code, ap.clock_status, ap.created_at,
		       e.full_name AS employee_name
		FROM assigned_personnel ap
		JOIN employees e ON e.id = ap.employee_id
		WHERE ap.shift_id = $1
		ORDER BY e.full_name, ap.id
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned personnel: %w", err)
	}
	defer rows.Close()

	var personnel []shift.AssignedPersonnel
	for rows.Next() {
		var ap shift.AssignedPersonnel
		err := rows.Scan(
			&ap.ID, &ap.ShiftID, &ap.EmployeeID, &ap.RoleCode, &ap.ClockStatus, &ap.CreatedAt,
			&ap.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assigned personnel: %w", err)
		}
		personnel = append(personnel, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assigned personnel: %w", err)
	}

	for i := range personnel {
		entries, err := r.getTimeEntries(ctx, personnel[i].ID)
		if err != nil {
			return nil, err
		}
		personnel[i].TimeEntries = entries
	}

	return personnel, nil
}

func (r *shiftRepository) getTimeEntries(ctx context.Context, assignedPersonnelID string) ([]shift.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assigned_personnel_id, entry_number, clock_in, clock_out, created_at
		FROM time_entries
		WHERE assigned_personnel_id = $1
		ORDER BY entry_number
	`

	rows, err := q.Query(ctx, query, assignedPersonnelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []shift.TimeEntry
	for rows.Next() {
		var te shift.TimeEntry
		err := rows.Scan(&te.ID, &te.AssignedPersonnelID, &te.EntryNumber, &te.ClockIn, &te.ClockOut, &te.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, te)
	}

	return entries, rows.Err()
}

// MarkCompleted implements shift.ShiftRepository.
func (r *shiftRepository) MarkCompleted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark shift completed: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
