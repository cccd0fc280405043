package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

func TestRecorder_ObserveValidation(t *testing.T) {
	r := NewRecorder()

	r.ObserveValidation(scheduling.AssignmentCandidate{}, scheduling.Valid())
	r.ObserveValidation(scheduling.AssignmentCandidate{}, scheduling.Conflict(scheduling.ConflictUnitConflict, "taken"))
	r.ObserveValidation(scheduling.AssignmentCandidate{IsEmergency: true}, scheduling.EmergencyOverride(nil, []scheduling.ExistingAssignment{
		{RequestID: "urgent-1", IsEmergency: true},
		{RequestID: "urgent-2", IsEmergency: true},
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("None", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("UnitConflict", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("None", "true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.flagged))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.cancellations))
}

func TestRecorder_ObserveOverride(t *testing.T) {
	r := NewRecorder()

	r.ObserveOverride(scheduling.ProcessEmergencyOverride([]scheduling.ExistingAssignment{
		{RequestID: "r1"},
		{RequestID: "r2"},
	}), []scheduling.ExistingAssignment{{RequestID: "urgent-1", IsEmergency: true}})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cancellations))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.flagged))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveValidation(scheduling.AssignmentCandidate{}, scheduling.Conflict(scheduling.ConflictWorkerDoubleBooked, "busy"))

	path := filepath.Join(t.TempDir(), "maintenance.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `maintenance_assignment_validations_total{conflict_type="WorkerDoubleBooked",emergency="false"} 1`)
}

func TestRecorder_WriteTextfileBadPath(t *testing.T) {
	r := NewRecorder()

	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "maintenance.prom"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics textfile")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveValidation(scheduling.AssignmentCandidate{}, scheduling.Valid())
		r.ObserveOverride(scheduling.CancellationResult{}, nil)
	})
}
