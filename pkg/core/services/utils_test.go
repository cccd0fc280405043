package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling/rules"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
	"github.com/jakechorley/maintenance-tracker/pkg/db"
	"github.com/jakechorley/maintenance-tracker/pkg/metrics"
)

// mockDB implements a test double for db.Database
type mockDB struct {
	assignments []db.Assignment

	getErr    error
	insertErr error
	cancelErr error

	filters   []db.SnapshotFilter
	locks     []db.AssignmentLock
	inserted  []*db.Assignment
	cancelled []db.Cancellation
}

func (m *mockDB) GetActiveAssignments(ctx context.Context, filter db.SnapshotFilter) ([]db.Assignment, error) {
	m.filters = append(m.filters, filter)
	if m.getErr != nil {
		return nil, m.getErr
	}

	var result []db.Assignment
	for _, a := range m.assignments {
		if !scheduling.Status(a.Status).IsActive() {
			continue
		}
		if strings.EqualFold(a.PropertyCode, filter.PropertyCode) ||
			(filter.WorkerEmail != "" && strings.EqualFold(a.WorkerEmail, filter.WorkerEmail)) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockDB) GetAssignmentsForDate(ctx context.Context, propertyCode string, date time.Time) ([]db.Assignment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	var result []db.Assignment
	for _, a := range m.assignments {
		if scheduling.Status(a.Status).IsActive() &&
			strings.EqualFold(a.PropertyCode, propertyCode) &&
			a.ScheduledDate == date.Format("2006-01-02") {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockDB) InsertAssignment(ctx context.Context, assignment *db.Assignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, assignment)
	return nil
}

func (m *mockDB) CancelAssignments(ctx context.Context, cancellations []db.Cancellation) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelled = append(m.cancelled, cancellations...)
	return nil
}

func (m *mockDB) WithAssignmentLock(ctx context.Context, lock db.AssignmentLock, fn func(store db.AssignmentStore) error) error {
	m.locks = append(m.locks, lock)
	return fn(m)
}

var testDate = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) // a Monday

func newTestEngine(t *testing.T, standing ...config.StandingAssignment) *Engine {
	t.Helper()

	converted, err := convertStandingAssignments(standing)
	require.NoError(t, err)

	normalizer := specialization.Default()
	return &Engine{
		Detector:   rules.NewDefaultDetector(normalizer, scheduling.DefaultMaxAssignmentsPerWorkerPerUnit, scheduling.UnitCapSameDate),
		Normalizer: normalizer,
		Standing:   converted,
		CapScope:   scheduling.UnitCapSameDate,
		Metrics:    metrics.NewRecorder(),
	}
}

func candidate(worker, property, unit string) scheduling.AssignmentCandidate {
	return scheduling.AssignmentCandidate{
		RequestID:              "new-req",
		PropertyCode:           property,
		UnitNumber:             unit,
		ScheduledDate:          testDate,
		WorkerEmail:            worker,
		WorkerSpecialization:   "Plumber",
		RequiredSpecialization: "Plumbing",
	}
}

func stored(requestID, worker, property, unit string, emergency bool) db.Assignment {
	return db.Assignment{
		ID:              "id-" + requestID,
		RequestID:       requestID,
		PropertyCode:    property,
		UnitNumber:      unit,
		WorkerEmail:     worker,
		ScheduledDate:   "2024-01-15",
		Status:          "Scheduled",
		IsEmergency:     emergency,
		WorkOrderNumber: "WO-" + requestID,
	}
}

func weeklyBoilerCheck() config.StandingAssignment {
	return config.StandingAssignment{
		RRule:           "FREQ=WEEKLY;BYDAY=MO",
		Start:           "2024-01-01",
		PropertyCode:    "SUNSET-APTS",
		UnitNumber:      "101",
		WorkerEmail:     "hvac@x.com",
		WorkOrderNumber: "PM-BOILER",
	}
}
