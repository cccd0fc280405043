package db

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates that no active assignment matched
var ErrNotFound = errors.New("assignment not found")

// ErrDuplicateRequest indicates that an assignment already exists for the request ID
var ErrDuplicateRequest = errors.New("assignment already exists for request")

// AssignmentReader defines read operations used to build snapshots
type AssignmentReader interface {
	GetActiveAssignments(ctx context.Context, filter SnapshotFilter) ([]Assignment, error)
	GetAssignmentsForDate(ctx context.Context, propertyCode string, date time.Time) ([]Assignment, error)
}

// AssignmentStore defines the interface for assignment database operations
type AssignmentStore interface {
	AssignmentReader
	InsertAssignment(ctx context.Context, assignment *Assignment) error
	CancelAssignments(ctx context.Context, cancellations []Cancellation) error
}

// Database defines the interface for all database operations.
//
// WithAssignmentLock runs fn in a single transaction that holds exclusive locks on the
// (property, unit, date) and (worker, date) pairs, plus (worker, property, unit) when the
// lock asks for it, so read-snapshot-then-write sequences for the same unit or worker never
// interleave.
type Database interface {
	AssignmentStore
	WithAssignmentLock(ctx context.Context, lock AssignmentLock, fn func(store AssignmentStore) error) error
}

// AssignmentLock names the unit and worker a transaction needs exclusive access to
type AssignmentLock struct {
	PropertyCode string
	UnitNumber   string
	WorkerEmail  string
	Date         time.Time

	// WorkerUnitAllDates also locks the worker's assignments in the unit on every date.
	// Needed when the per-worker-per-unit cap counts assignments regardless of date.
	WorkerUnitAllDates bool
}
