package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/db"
)

// OverrideResult contains the side effects of accepting an emergency candidate
type OverrideResult struct {
	// Cancellation covers every displaced assignment, including standing work
	Cancellation scheduling.CancellationResult

	// StandingDisplaced lists standing work that was displaced but lives only in config.
	// It has to be rescheduled by hand.
	StandingDisplaced []scheduling.ExistingAssignment

	// Flagged are emergency assignments left in place for manual attention
	Flagged []scheduling.ExistingAssignment
}

// ApplyEmergencyOverride records the cancellations an accepted emergency requires and
// surfaces its emergency conflicts. Stored assignments are moved to Cancelled with an audit
// reason; standing work is reported instead.
func ApplyEmergencyOverride(ctx context.Context, store db.AssignmentStore, engine *Engine, logger *zap.Logger, validation scheduling.ValidationResult) (*OverrideResult, error) {
	if !validation.IsValid {
		return nil, fmt.Errorf("cannot apply emergency override for rejected assignment: %s", validation.ErrorMessage)
	}

	cancellation := scheduling.ProcessEmergencyOverride(validation.AssignmentsToCancelForEmergency)

	result := &OverrideResult{
		Cancellation:      cancellation,
		StandingDisplaced: []scheduling.ExistingAssignment{},
		Flagged:           validation.EmergencyConflicts,
	}

	var cancellations []db.Cancellation
	for _, c := range cancellation.CancelledAssignments {
		if isStanding(c.Assignment) {
			result.StandingDisplaced = append(result.StandingDisplaced, c.Assignment)
			continue
		}
		cancellations = append(cancellations, db.Cancellation{
			RequestID: c.Assignment.RequestID,
			Reason:    c.CancellationReason,
		})
	}

	if len(cancellations) > 0 {
		if err := store.CancelAssignments(ctx, cancellations); err != nil {
			return nil, fmt.Errorf("failed to cancel displaced assignments: %w", err)
		}
	}

	engine.Metrics.ObserveOverride(cancellation, result.Flagged)

	for _, c := range cancellation.CancelledAssignments {
		logger.Info("Assignment cancelled by emergency override",
			zap.String("request_id", c.Assignment.RequestID),
			zap.String("worker_email", c.Assignment.WorkerEmail),
			zap.String("work_order_number", c.Assignment.WorkOrderNumber),
			zap.Bool("standing", isStanding(c.Assignment)))
	}
	for _, a := range result.StandingDisplaced {
		logger.Warn("Standing assignment displaced, reschedule it in config",
			zap.String("work_order_number", a.WorkOrderNumber),
			zap.String("scheduled_date", a.ScheduledDate.Format("2006-01-02")))
	}
	for _, a := range result.Flagged {
		logger.Warn("Emergency conflict requires manual attention",
			zap.String("request_id", a.RequestID),
			zap.String("worker_email", a.WorkerEmail),
			zap.String("property_code", a.PropertyCode),
			zap.String("unit_number", a.UnitNumber))
	}

	return result, nil
}
