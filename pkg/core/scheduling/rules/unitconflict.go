package rules

import (
	"fmt"
	"strings"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

// UnitConflictRule enforces unit exclusivity and the per-worker-per-unit cap.
//
// Active assignments in the candidate's unit are split into those held by other workers
// and those held by the candidate's worker.
//
// Other workers present on the same date:
//   - Non-emergency candidate: fires UnitConflict
//   - Emergency candidate: fires valid, cancelling non-emergency work and flagging
//     emergency work
//
// Otherwise, worker already at the cap (counted per scope):
//   - Non-emergency candidate: fires WorkerUnitLimit
//   - Emergency candidate: fires valid, cancelling or flagging as above
type UnitConflictRule struct {
	maxPerWorker int
	scope        scheduling.UnitCapScope
}

// NewUnitConflictRule creates a new UnitConflictRule.
// maxPerWorker below 1 falls back to the default cap; an unknown scope falls back to same_date.
func NewUnitConflictRule(maxPerWorker int, scope scheduling.UnitCapScope) *UnitConflictRule {
	if maxPerWorker < 1 {
		maxPerWorker = scheduling.DefaultMaxAssignmentsPerWorkerPerUnit
	}
	if scope != scheduling.UnitCapAnyDate {
		scope = scheduling.UnitCapSameDate
	}
	return &UnitConflictRule{
		maxPerWorker: maxPerWorker,
		scope:        scope,
	}
}

func (r *UnitConflictRule) Name() string {
	return "UnitConflict"
}

// MaxPerWorker returns the effective cap
func (r *UnitConflictRule) MaxPerWorker() int {
	return r.maxPerWorker
}

// Scope returns the effective cap scope
func (r *UnitConflictRule) Scope() scheduling.UnitCapScope {
	return r.scope
}

func (r *UnitConflictRule) Evaluate(candidate scheduling.AssignmentCandidate, snapshot scheduling.Snapshot) (bool, scheduling.ValidationResult) {
	inUnit := snapshot.Active().Filter(func(a scheduling.ExistingAssignment) bool {
		return a.SameUnit(candidate.PropertyCode, candidate.UnitNumber)
	})

	otherWorkers := inUnit.Filter(func(a scheduling.ExistingAssignment) bool {
		return scheduling.SameDay(a.ScheduledDate, candidate.ScheduledDate) &&
			!scheduling.SameWorker(a.WorkerEmail, candidate.WorkerEmail)
	})

	if len(otherWorkers) > 0 {
		if !candidate.IsEmergency {
			return true, scheduling.Conflict(
				scheduling.ConflictUnitConflict,
				fmt.Sprintf("Unit %s already has worker %s assigned", strings.TrimSpace(candidate.UnitNumber), otherWorkers[0].WorkerEmail),
			)
		}
		return true, scheduling.EmergencyOverride(scheduling.ResolveEmergencyOverride(true, otherWorkers))
	}

	sameWorker := inUnit.Filter(func(a scheduling.ExistingAssignment) bool {
		if !scheduling.SameWorker(a.WorkerEmail, candidate.WorkerEmail) {
			return false
		}
		return r.scope == scheduling.UnitCapAnyDate || scheduling.SameDay(a.ScheduledDate, candidate.ScheduledDate)
	})

	if len(sameWorker) < r.maxPerWorker {
		return false, scheduling.ValidationResult{}
	}

	if !candidate.IsEmergency {
		return true, scheduling.Conflict(
			scheduling.ConflictWorkerUnitLimit,
			fmt.Sprintf("%s already has maximum %d assignments in Unit %s", strings.TrimSpace(candidate.WorkerEmail), r.maxPerWorker, strings.TrimSpace(candidate.UnitNumber)),
		)
	}
	return true, scheduling.EmergencyOverride(scheduling.ResolveEmergencyOverride(true, sameWorker))
}
