package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jakechorley/maintenance-tracker/pkg/db"
)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// assignmentStore runs assignment queries against a pool or a transaction
type assignmentStore struct {
	q querier
}

var (
	_ db.Database        = (*DB)(nil)
	_ db.AssignmentStore = (*assignmentStore)(nil)
)

const selectAssignment = `
	SELECT id::text, request_id, property_code, unit_number, worker_email, scheduled_date,
		status, is_emergency, work_order_number, cancellation_reason
	FROM assignment
`

// GetActiveAssignments retrieves active assignments at the filter's property or held by its worker
func (d *DB) GetActiveAssignments(ctx context.Context, filter db.SnapshotFilter) ([]db.Assignment, error) {
	return (&assignmentStore{q: d.pool}).GetActiveAssignments(ctx, filter)
}

// GetAssignmentsForDate retrieves active assignments at a property on one date
func (d *DB) GetAssignmentsForDate(ctx context.Context, propertyCode string, date time.Time) ([]db.Assignment, error) {
	return (&assignmentStore{q: d.pool}).GetAssignmentsForDate(ctx, propertyCode, date)
}

// InsertAssignment inserts a new assignment record
func (d *DB) InsertAssignment(ctx context.Context, assignment *db.Assignment) error {
	return (&assignmentStore{q: d.pool}).InsertAssignment(ctx, assignment)
}

// CancelAssignments marks active assignments as cancelled
func (d *DB) CancelAssignments(ctx context.Context, cancellations []db.Cancellation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := (&assignmentStore{q: tx}).CancelAssignments(ctx, cancellations); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellations: %w", err)
	}
	return nil
}

// WithAssignmentLock runs fn inside a transaction holding advisory locks for the lock's unit
// and worker on its date, plus the worker's hold on the unit across dates when requested.
// The locks are released when the transaction ends.
func (d *DB) WithAssignmentLock(ctx context.Context, lock db.AssignmentLock, fn func(store db.AssignmentStore) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, key := range lockKeys(lock) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
			return fmt.Errorf("failed to acquire assignment lock: %w", err)
		}
	}

	if err := fn(&assignmentStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockKeys returns the advisory lock keys for a lock in ascending order. Every caller takes
// keys in the same order so two transactions never wait on each other in a cycle.
func lockKeys(lock db.AssignmentLock) []int64 {
	date := lock.Date.Format("2006-01-02")
	unit := strings.ToLower(strings.TrimSpace(lock.PropertyCode)) + "/" + strings.ToLower(strings.TrimSpace(lock.UnitNumber))
	worker := strings.ToLower(strings.TrimSpace(lock.WorkerEmail))

	names := []string{
		"unit:" + unit + "/" + date,
		"worker:" + worker + "/" + date,
	}
	if lock.WorkerUnitAllDates {
		names = append(names, "worker-unit:"+worker+"/"+unit)
	}

	keys := make([]int64, 0, len(names))
	seen := make(map[int64]bool)
	for _, name := range names {
		key := lockKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func lockKey(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

func (s *assignmentStore) GetActiveAssignments(ctx context.Context, filter db.SnapshotFilter) ([]db.Assignment, error) {
	rows, err := s.q.Query(ctx, selectAssignment+`
		WHERE status IN ('Scheduled', 'InProgress')
			AND (LOWER(property_code) = LOWER($1) OR ($2 <> '' AND LOWER(worker_email) = LOWER($2)))
		ORDER BY scheduled_date, created_at
	`, strings.TrimSpace(filter.PropertyCode), strings.TrimSpace(filter.WorkerEmail))
	if err != nil {
		return nil, fmt.Errorf("failed to query active assignments: %w", err)
	}
	return scanAssignments(rows)
}

func (s *assignmentStore) GetAssignmentsForDate(ctx context.Context, propertyCode string, date time.Time) ([]db.Assignment, error) {
	rows, err := s.q.Query(ctx, selectAssignment+`
		WHERE status IN ('Scheduled', 'InProgress')
			AND LOWER(property_code) = LOWER($1)
			AND scheduled_date = $2
		ORDER BY unit_number, created_at
	`, strings.TrimSpace(propertyCode), date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for date: %w", err)
	}
	return scanAssignments(rows)
}

func (s *assignmentStore) InsertAssignment(ctx context.Context, assignment *db.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	if assignment.Status == "" {
		assignment.Status = "Scheduled"
	}

	_, err := s.q.Exec(ctx, `
		INSERT INTO assignment (id, request_id, property_code, unit_number, worker_email,
			scheduled_date, status, is_emergency, work_order_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, assignment.ID, assignment.RequestID, assignment.PropertyCode, assignment.UnitNumber,
		assignment.WorkerEmail, assignment.ScheduledDate, assignment.Status, assignment.IsEmergency,
		assignment.WorkOrderNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("failed to insert assignment %s: %w", assignment.RequestID, db.ErrDuplicateRequest)
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func (s *assignmentStore) CancelAssignments(ctx context.Context, cancellations []db.Cancellation) error {
	for _, c := range cancellations {
		tag, err := s.q.Exec(ctx, `
			UPDATE assignment
			SET status = 'Cancelled', cancellation_reason = $2, updated_at = NOW()
			WHERE request_id = $1 AND status IN ('Scheduled', 'InProgress')
		`, c.RequestID, c.Reason)
		if err != nil {
			return fmt.Errorf("failed to cancel assignment %s: %w", c.RequestID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("failed to cancel assignment %s: %w", c.RequestID, db.ErrNotFound)
		}
	}
	return nil
}

func scanAssignments(rows pgx.Rows) ([]db.Assignment, error) {
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var scheduledDate time.Time
		if err := rows.Scan(&a.ID, &a.RequestID, &a.PropertyCode, &a.UnitNumber, &a.WorkerEmail,
			&scheduledDate, &a.Status, &a.IsEmergency, &a.WorkOrderNumber, &a.CancellationReason); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.ScheduledDate = scheduledDate.Format("2006-01-02")
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
