package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEmergencyOverride_OneEntryPerAssignment(t *testing.T) {
	toCancel := []ExistingAssignment{
		{RequestID: "req-1", WorkerEmail: "a@test.com", WorkOrderNumber: "WO-1", ScheduledDate: testDate},
		{RequestID: "req-2", WorkerEmail: "b@test.com", WorkOrderNumber: "WO-2", ScheduledDate: testDate},
		{RequestID: "req-3", WorkerEmail: "c@test.com", WorkOrderNumber: "WO-3", ScheduledDate: testDate},
	}

	result := ProcessEmergencyOverride(toCancel)

	assert.Len(t, result.CancelledRequestIDs, 3)
	require.Len(t, result.CancelledAssignments, 3)
	for i, cancelled := range result.CancelledAssignments {
		assert.True(t, result.CancelledRequestIDs[toCancel[i].RequestID])
		assert.Equal(t, toCancel[i], cancelled.Assignment)
		assert.Contains(t, strings.ToLower(cancelled.CancellationReason), "emergency")
	}
}

func TestProcessEmergencyOverride_ReasonCarriesAuditDetails(t *testing.T) {
	a := ExistingAssignment{
		RequestID:       "req-1",
		WorkerEmail:     "plumber@test.com",
		WorkOrderNumber: "WO-2025-0042",
		ScheduledDate:   time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC),
	}

	result := ProcessEmergencyOverride([]ExistingAssignment{a})

	require.Len(t, result.CancelledAssignments, 1)
	reason := result.CancelledAssignments[0].CancellationReason
	assert.Contains(t, reason, "emergency override")
	assert.Contains(t, reason, "plumber@test.com")
	assert.Contains(t, reason, "WO-2025-0042")
	assert.Contains(t, reason, "2025-03-10")
}

func TestProcessEmergencyOverride_Empty(t *testing.T) {
	result := ProcessEmergencyOverride(nil)

	assert.NotNil(t, result.CancelledRequestIDs)
	assert.Empty(t, result.CancelledRequestIDs)
	assert.NotNil(t, result.CancelledAssignments)
	assert.Empty(t, result.CancelledAssignments)
}

func TestProcessEmergencyOverride_DuplicateRequestIDs(t *testing.T) {
	toCancel := []ExistingAssignment{
		{RequestID: "req-1", WorkOrderNumber: "WO-1", ScheduledDate: testDate},
		{RequestID: "req-1", WorkOrderNumber: "WO-2", ScheduledDate: testDate},
	}

	result := ProcessEmergencyOverride(toCancel)

	assert.Len(t, result.CancelledRequestIDs, 1)
	assert.Len(t, result.CancelledAssignments, 2)
}
