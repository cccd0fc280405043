package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmergencyOverride_SplitsByEmergencyFlag(t *testing.T) {
	conflicts := []ExistingAssignment{
		{RequestID: "routine-1", IsEmergency: false},
		{RequestID: "urgent-1", IsEmergency: true},
		{RequestID: "routine-2", IsEmergency: false},
	}

	toCancel, toFlag := ResolveEmergencyOverride(true, conflicts)

	assert.Equal(t, []string{"routine-1", "routine-2"}, requestIDs(toCancel))
	assert.Equal(t, []string{"urgent-1"}, requestIDs(toFlag))
}

func TestResolveEmergencyOverride_AllEmergency(t *testing.T) {
	conflicts := []ExistingAssignment{
		{RequestID: "urgent-1", IsEmergency: true},
		{RequestID: "urgent-2", IsEmergency: true},
	}

	toCancel, toFlag := ResolveEmergencyOverride(true, conflicts)

	assert.Empty(t, toCancel)
	assert.Len(t, toFlag, 2)
}

func TestResolveEmergencyOverride_NonEmergencyCandidateOverridesNothing(t *testing.T) {
	conflicts := []ExistingAssignment{
		{RequestID: "routine-1", IsEmergency: false},
		{RequestID: "urgent-1", IsEmergency: true},
	}

	toCancel, toFlag := ResolveEmergencyOverride(false, conflicts)

	assert.NotNil(t, toCancel)
	assert.NotNil(t, toFlag)
	assert.Empty(t, toCancel)
	assert.Empty(t, toFlag)
}

func TestResolveEmergencyOverride_NoConflicts(t *testing.T) {
	toCancel, toFlag := ResolveEmergencyOverride(true, nil)

	assert.Empty(t, toCancel)
	assert.Empty(t, toFlag)
}

func TestEmergencyOverride_SetsHasEmergencyConflicts(t *testing.T) {
	result := EmergencyOverride(nil, []ExistingAssignment{{RequestID: "urgent-1", IsEmergency: true}})

	assert.True(t, result.IsValid)
	assert.Equal(t, ConflictNone, result.ConflictType)
	assert.True(t, result.HasEmergencyConflicts)
	assert.Empty(t, result.AssignmentsToCancelForEmergency)

	result = EmergencyOverride([]ExistingAssignment{{RequestID: "routine-1"}}, nil)
	assert.False(t, result.HasEmergencyConflicts)
	assert.Len(t, result.AssignmentsToCancelForEmergency, 1)
}

func requestIDs(assignments []ExistingAssignment) []string {
	ids := make([]string, len(assignments))
	for i, a := range assignments {
		ids[i] = a.RequestID
	}
	return ids
}
