package rules

import (
	"fmt"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

// WorkerDoubleBookingRule prevents a worker being in two places on one day.
//
// Fires:
//   - When the worker already holds an active assignment on the candidate's date in a
//     different (property, unit)
//
// Never waived for emergencies: an emergency can displace other work in a unit, but it
// cannot move a worker who is committed elsewhere.
type WorkerDoubleBookingRule struct{}

// NewWorkerDoubleBookingRule creates a new WorkerDoubleBookingRule
func NewWorkerDoubleBookingRule() *WorkerDoubleBookingRule {
	return &WorkerDoubleBookingRule{}
}

func (r *WorkerDoubleBookingRule) Name() string {
	return "WorkerDoubleBooking"
}

func (r *WorkerDoubleBookingRule) Evaluate(candidate scheduling.AssignmentCandidate, snapshot scheduling.Snapshot) (bool, scheduling.ValidationResult) {
	elsewhere := snapshot.Active().Filter(func(a scheduling.ExistingAssignment) bool {
		return scheduling.SameWorker(a.WorkerEmail, candidate.WorkerEmail) &&
			scheduling.SameDay(a.ScheduledDate, candidate.ScheduledDate) &&
			!a.SameUnit(candidate.PropertyCode, candidate.UnitNumber)
	})

	if len(elsewhere) == 0 {
		return false, scheduling.ValidationResult{}
	}

	existing := elsewhere[0]
	var message string
	if candidate.IsEmergency {
		message = fmt.Sprintf("Emergency request cannot override worker %s being physically assigned elsewhere (%s Unit %s)",
			candidate.WorkerEmail, existing.PropertyCode, existing.UnitNumber)
	} else {
		message = fmt.Sprintf("%s already assigned to %s Unit %s",
			candidate.WorkerEmail, existing.PropertyCode, existing.UnitNumber)
	}

	return true, scheduling.Conflict(scheduling.ConflictWorkerDoubleBooked, message)
}
