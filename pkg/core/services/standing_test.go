package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/metrics"
)

func TestConvertStandingAssignments(t *testing.T) {
	converted, err := convertStandingAssignments([]config.StandingAssignment{weeklyBoilerCheck()})
	require.NoError(t, err)
	require.Len(t, converted, 1)

	s := converted[0]
	assert.True(t, s.OccursOn(testDate))
	assert.True(t, s.OccursOn(testDate.AddDate(0, 0, 7)))
	assert.False(t, s.OccursOn(testDate.AddDate(0, 0, 1)))
}

func TestConvertStandingAssignments_NotBeforeStart(t *testing.T) {
	standing := weeklyBoilerCheck()
	standing.Start = "2024-02-01"

	converted, err := convertStandingAssignments([]config.StandingAssignment{standing})
	require.NoError(t, err)

	assert.False(t, converted[0].OccursOn(testDate))
	assert.True(t, converted[0].OccursOn(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)))
}

func TestConvertStandingAssignments_InvalidRRule(t *testing.T) {
	standing := weeklyBoilerCheck()
	standing.RRule = "FREQ=SOMETIMES"

	_, err := convertStandingAssignments([]config.StandingAssignment{standing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rrule for standing assignment 0")
}

func TestConvertStandingAssignments_InvalidStart(t *testing.T) {
	standing := weeklyBoilerCheck()
	standing.Start = "next monday"

	_, err := convertStandingAssignments([]config.StandingAssignment{standing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse start for standing assignment 0")
}

func TestStandingAssignment_OnIsDeterministic(t *testing.T) {
	converted, err := convertStandingAssignments([]config.StandingAssignment{weeklyBoilerCheck()})
	require.NoError(t, err)
	s := converted[0]

	a := s.On(testDate)
	b := s.On(scheduling.DateOnly(testDate))

	assert.Equal(t, a.RequestID, b.RequestID)
	assert.True(t, isStanding(a))
	assert.Equal(t, scheduling.StatusScheduled, a.Status)
	assert.Equal(t, "hvac@x.com", a.WorkerEmail)
	assert.Equal(t, scheduling.DateOnly(testDate), a.ScheduledDate)
	assert.NotEqual(t, a.RequestID, s.On(testDate.AddDate(0, 0, 7)).RequestID)
}

func TestNewEngine_FromConfig(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:                    "postgres://localhost/maintenance",
		MaxAssignmentsPerWorkerPerUnit: 3,
		UnitCapScope:                   "any_date",
		SpecializationAliases:          map[string][]string{"Plumbing": {"Pipe Fitter"}},
		StandingAssignments:            []config.StandingAssignment{weeklyBoilerCheck()},
	}

	engine, err := NewEngine(cfg, metrics.NewRecorder())
	require.NoError(t, err)

	assert.Equal(t, []string{"Specialization", "WorkerDoubleBooking", "UnitConflict"}, engine.Detector.RuleNames())
	assert.Equal(t, "Plumbing", string(engine.Normalizer.Canonicalize("pipe fitter")))
	assert.Len(t, engine.Standing, 1)
	assert.Equal(t, scheduling.UnitCapAnyDate, engine.CapScope)
	assert.NotNil(t, engine.Metrics)
}

func TestNewEngine_BadStandingAssignment(t *testing.T) {
	standing := weeklyBoilerCheck()
	standing.RRule = "not a rule"
	cfg := &config.Config{StandingAssignments: []config.StandingAssignment{standing}}

	_, err := NewEngine(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert standing assignments")
}
