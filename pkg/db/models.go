package db

import (
	"fmt"
	"time"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

// Assignment represents a database assignment record
type Assignment struct {
	ID                 string
	RequestID          string
	PropertyCode       string
	UnitNumber         string
	WorkerEmail        string
	ScheduledDate      string // YYYY-MM-DD
	Status             string
	IsEmergency        bool
	WorkOrderNumber    string
	CancellationReason string
}

// Cancellation is a request to move an active assignment to Cancelled
type Cancellation struct {
	RequestID string
	Reason    string
}

// SnapshotFilter selects the active assignments needed to validate a candidate: everything
// at the property, plus the worker's assignments anywhere
type SnapshotFilter struct {
	PropertyCode string
	WorkerEmail  string
}

// ToExistingAssignment converts the record into the scheduling engine's form
func (a Assignment) ToExistingAssignment() (scheduling.ExistingAssignment, error) {
	date, err := time.Parse("2006-01-02", a.ScheduledDate)
	if err != nil {
		return scheduling.ExistingAssignment{}, fmt.Errorf("assignment %s has invalid scheduled date %q: %w", a.ID, a.ScheduledDate, err)
	}

	return scheduling.ExistingAssignment{
		RequestID:       a.RequestID,
		PropertyCode:    a.PropertyCode,
		UnitNumber:      a.UnitNumber,
		WorkerEmail:     a.WorkerEmail,
		ScheduledDate:   date,
		Status:          scheduling.Status(a.Status),
		IsEmergency:     a.IsEmergency,
		WorkOrderNumber: a.WorkOrderNumber,
	}, nil
}

// ToSnapshot converts records into a snapshot, preserving order
func ToSnapshot(assignments []Assignment) (scheduling.Snapshot, error) {
	snapshot := make(scheduling.Snapshot, 0, len(assignments))
	for _, a := range assignments {
		existing, err := a.ToExistingAssignment()
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, existing)
	}
	return snapshot, nil
}
