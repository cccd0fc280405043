package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

func TestWorkerDoubleBookingRule_Name(t *testing.T) {
	assert.Equal(t, "WorkerDoubleBooking", NewWorkerDoubleBookingRule().Name())
}

func TestWorkerDoubleBookingRule_DifferentUnitSameDate(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP001", "102", scheduling.StatusScheduled),
	}

	fired, result := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)

	assert.True(t, fired)
	assert.Equal(t, scheduling.ConflictWorkerDoubleBooked, result.ConflictType)
	assert.Equal(t, "plumber@test.com already assigned to PROP001 Unit 102", result.ErrorMessage)
}

func TestWorkerDoubleBookingRule_DifferentProperty(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP002", "101", scheduling.StatusInProgress),
	}

	fired, result := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)

	assert.True(t, fired)
	assert.Contains(t, result.ErrorMessage, "PROP002 Unit 101")
}

func TestWorkerDoubleBookingRule_EmergencyCannotOverride(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP001", "102", scheduling.StatusScheduled),
	}
	candidate := candidateFor("plumber@test.com", "PROP001", "101")
	candidate.IsEmergency = true

	fired, result := rule.Evaluate(candidate, snapshot)

	assert.True(t, fired)
	assert.False(t, result.IsValid)
	assert.Equal(t, scheduling.ConflictWorkerDoubleBooked, result.ConflictType)
	assert.Contains(t, result.ErrorMessage, "cannot override worker plumber@test.com being physically assigned elsewhere")
	assert.Empty(t, result.AssignmentsToCancelForEmergency)
}

func TestWorkerDoubleBookingRule_SameUnitIgnored(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP001", "101", scheduling.StatusScheduled),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)
	assert.False(t, fired)
}

func TestWorkerDoubleBookingRule_DifferentDateIgnored(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		onDate(assignment("r1", "plumber@test.com", "PROP001", "102", scheduling.StatusScheduled), nextDay),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)
	assert.False(t, fired)
}

func TestWorkerDoubleBookingRule_OtherWorkerIgnored(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "hvac@test.com", "PROP001", "102", scheduling.StatusScheduled),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)
	assert.False(t, fired)
}

func TestWorkerDoubleBookingRule_InactiveIgnored(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP001", "102", scheduling.StatusCompleted),
		assignment("r2", "plumber@test.com", "PROP001", "103", scheduling.StatusCancelled),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)
	assert.False(t, fired)
}

func TestWorkerDoubleBookingRule_EmailCaseInsensitive(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "Plumber@Test.com", "PROP001", "102", scheduling.StatusScheduled),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001", "101"), snapshot)
	assert.True(t, fired)
}

func TestWorkerDoubleBookingRule_PaddedSameUnitIsNotElsewhere(t *testing.T) {
	rule := NewWorkerDoubleBookingRule()
	snapshot := scheduling.Snapshot{
		assignment("r1", "plumber@test.com", "PROP001", "101", scheduling.StatusScheduled),
	}

	fired, _ := rule.Evaluate(candidateFor("plumber@test.com", "PROP001 ", "101 "), snapshot)
	assert.False(t, fired)
}
