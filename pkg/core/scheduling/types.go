package scheduling

import "time"

// Status is the lifecycle state of an assignment
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// IsActive returns true for Scheduled and InProgress assignments.
// Only active assignments take part in conflict checks.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusInProgress
}

// IsKnown returns true if s is one of the four lifecycle states
func (s Status) IsKnown() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ConflictType identifies which rule blocked a candidate assignment
type ConflictType string

const (
	ConflictNone                   ConflictType = "None"
	ConflictSpecializationMismatch ConflictType = "SpecializationMismatch"
	ConflictWorkerDoubleBooked     ConflictType = "WorkerDoubleBooked"
	ConflictUnitConflict           ConflictType = "UnitConflict"
	ConflictWorkerUnitLimit        ConflictType = "WorkerUnitLimit"
)

// UnitCapScope controls which of a worker's assignments in a unit count toward
// the per-worker-per-unit cap
type UnitCapScope string

const (
	// UnitCapSameDate counts only assignments on the candidate's date
	UnitCapSameDate UnitCapScope = "same_date"

	// UnitCapAnyDate counts every active assignment in the unit regardless of date
	UnitCapAnyDate UnitCapScope = "any_date"
)

// DefaultMaxAssignmentsPerWorkerPerUnit is the default per-worker-per-unit cap
const DefaultMaxAssignmentsPerWorkerPerUnit = 2

// ExistingAssignment is a read-only fact about a currently scheduled piece of work
type ExistingAssignment struct {
	RequestID       string
	PropertyCode    string
	UnitNumber      string
	WorkerEmail     string
	ScheduledDate   time.Time
	Status          Status
	IsEmergency     bool
	WorkOrderNumber string
}

// AssignmentCandidate is a proposed new assignment
type AssignmentCandidate struct {
	RequestID     string
	PropertyCode  string
	UnitNumber    string
	ScheduledDate time.Time
	WorkerEmail   string

	// WorkerSpecialization is the worker's free-text role or trade
	WorkerSpecialization string

	// RequiredSpecialization is the free-text trade the request needs.
	// Empty means no constraint.
	RequiredSpecialization string

	IsEmergency bool
}

// ValidationResult is the decision for a single candidate
type ValidationResult struct {
	IsValid      bool
	ConflictType ConflictType

	// ErrorMessage is human-readable and empty when valid
	ErrorMessage string

	// AssignmentsToCancelForEmergency are displaced by accepting an emergency candidate,
	// in snapshot order
	AssignmentsToCancelForEmergency []ExistingAssignment

	// HasEmergencyConflicts is true when EmergencyConflicts is non-empty
	HasEmergencyConflicts bool

	// EmergencyConflicts stay in place but must be surfaced for manual attention
	EmergencyConflicts []ExistingAssignment
}

// CancelledAssignment pairs a cancelled assignment with its audit reason
type CancelledAssignment struct {
	Assignment         ExistingAssignment
	CancellationReason string
}

// CancellationResult is the auditable outcome of an emergency override
type CancellationResult struct {
	CancelledRequestIDs  map[string]bool
	CancelledAssignments []CancelledAssignment
}

// Valid returns an accepting result with no side effects
func Valid() ValidationResult {
	return ValidationResult{
		IsValid:                         true,
		ConflictType:                    ConflictNone,
		AssignmentsToCancelForEmergency: []ExistingAssignment{},
		EmergencyConflicts:              []ExistingAssignment{},
	}
}

// Conflict returns a rejecting result
func Conflict(conflictType ConflictType, message string) ValidationResult {
	return ValidationResult{
		IsValid:                         false,
		ConflictType:                    conflictType,
		ErrorMessage:                    message,
		AssignmentsToCancelForEmergency: []ExistingAssignment{},
		EmergencyConflicts:              []ExistingAssignment{},
	}
}

// EmergencyOverride returns an accepting result that cancels toCancel and flags toFlag
func EmergencyOverride(toCancel, toFlag []ExistingAssignment) ValidationResult {
	result := Valid()
	result.AssignmentsToCancelForEmergency = append(result.AssignmentsToCancelForEmergency, toCancel...)
	result.EmergencyConflicts = append(result.EmergencyConflicts, toFlag...)
	result.HasEmergencyConflicts = len(result.EmergencyConflicts) > 0
	return result
}
