package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/db"
)

// AssignWorkerResult contains the outcome of an assignment attempt
type AssignWorkerResult struct {
	Validation scheduling.ValidationResult

	// Assignment is the inserted record, nil when the candidate was rejected
	Assignment *db.Assignment

	// Override is set when an accepted emergency displaced or flagged existing work
	Override *OverrideResult
}

// ValidateAssignment builds the snapshot for a candidate and runs the detector. Nothing is written.
func ValidateAssignment(ctx context.Context, store db.AssignmentReader, engine *Engine, logger *zap.Logger, candidate scheduling.AssignmentCandidate) (scheduling.ValidationResult, error) {
	logger.Debug("Validating assignment",
		zap.String("request_id", candidate.RequestID),
		zap.String("property_code", candidate.PropertyCode),
		zap.String("unit_number", candidate.UnitNumber),
		zap.String("worker_email", candidate.WorkerEmail),
		zap.String("scheduled_date", candidate.ScheduledDate.Format("2006-01-02")),
		zap.Bool("is_emergency", candidate.IsEmergency))

	snapshot, err := buildSnapshot(ctx, store, engine, candidate)
	if err != nil {
		return scheduling.ValidationResult{}, err
	}

	result, err := engine.Detector.Validate(candidate, snapshot)
	if err != nil {
		return scheduling.ValidationResult{}, fmt.Errorf("failed to validate assignment: %w", err)
	}

	engine.Metrics.ObserveValidation(candidate, result)
	logValidation(logger, candidate, result, len(snapshot))

	return result, nil
}

// AssignWorker validates a candidate and, when accepted, applies any emergency cancellations
// and inserts the new assignment. The snapshot read and the writes happen in one transaction
// holding the unit and worker locks for the candidate's date. A rejected candidate is not an
// error: the result carries the conflict and no assignment.
func AssignWorker(ctx context.Context, database db.Database, engine *Engine, logger *zap.Logger, candidate scheduling.AssignmentCandidate, workOrderNumber string) (*AssignWorkerResult, error) {
	if candidate.RequestID == "" {
		candidate.RequestID = uuid.New().String()
	}

	logger.Info("Assigning worker",
		zap.String("request_id", candidate.RequestID),
		zap.String("worker_email", candidate.WorkerEmail),
		zap.String("property_code", candidate.PropertyCode),
		zap.String("unit_number", candidate.UnitNumber),
		zap.String("scheduled_date", candidate.ScheduledDate.Format("2006-01-02")))

	lock := db.AssignmentLock{
		PropertyCode: candidate.PropertyCode,
		UnitNumber:   candidate.UnitNumber,
		WorkerEmail:  candidate.WorkerEmail,
		Date:         scheduling.DateOnly(candidate.ScheduledDate),

		WorkerUnitAllDates: engine.CapScope == scheduling.UnitCapAnyDate,
	}

	var result *AssignWorkerResult
	err := database.WithAssignmentLock(ctx, lock, func(store db.AssignmentStore) error {
		validation, err := ValidateAssignment(ctx, store, engine, logger, candidate)
		if err != nil {
			return err
		}

		result = &AssignWorkerResult{Validation: validation}
		if !validation.IsValid {
			return nil
		}

		if len(validation.AssignmentsToCancelForEmergency) > 0 || validation.HasEmergencyConflicts {
			override, err := ApplyEmergencyOverride(ctx, store, engine, logger, validation)
			if err != nil {
				return err
			}
			result.Override = override
		}

		assignment := &db.Assignment{
			ID:              uuid.New().String(),
			RequestID:       candidate.RequestID,
			PropertyCode:    strings.TrimSpace(candidate.PropertyCode),
			UnitNumber:      strings.TrimSpace(candidate.UnitNumber),
			WorkerEmail:     strings.TrimSpace(candidate.WorkerEmail),
			ScheduledDate:   candidate.ScheduledDate.Format("2006-01-02"),
			Status:          string(scheduling.StatusScheduled),
			IsEmergency:     candidate.IsEmergency,
			WorkOrderNumber: workOrderNumber,
		}
		if err := store.InsertAssignment(ctx, assignment); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
		result.Assignment = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Assignment != nil {
		logger.Info("Worker assigned",
			zap.String("assignment_id", result.Assignment.ID),
			zap.String("request_id", result.Assignment.RequestID))
	} else {
		logger.Info("Assignment rejected",
			zap.String("request_id", candidate.RequestID),
			zap.String("conflict_type", string(result.Validation.ConflictType)),
			zap.String("reason", result.Validation.ErrorMessage))
	}

	return result, nil
}

// buildSnapshot collects the active assignments the rules can inspect: stored work at the
// candidate's property or held by the worker, plus standing work on the candidate's date
func buildSnapshot(ctx context.Context, store db.AssignmentReader, engine *Engine, candidate scheduling.AssignmentCandidate) (scheduling.Snapshot, error) {
	records, err := store.GetActiveAssignments(ctx, db.SnapshotFilter{
		PropertyCode: candidate.PropertyCode,
		WorkerEmail:  candidate.WorkerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active assignments: %w", err)
	}

	snapshot, err := db.ToSnapshot(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	standing := standingOn(engine.Standing, candidate.ScheduledDate, func(s StandingAssignment) bool {
		return strings.EqualFold(strings.TrimSpace(s.PropertyCode), strings.TrimSpace(candidate.PropertyCode)) ||
			scheduling.SameWorker(s.WorkerEmail, candidate.WorkerEmail)
	})

	return append(snapshot, standing...), nil
}

func logValidation(logger *zap.Logger, candidate scheduling.AssignmentCandidate, result scheduling.ValidationResult, snapshotSize int) {
	fields := []zap.Field{
		zap.String("request_id", candidate.RequestID),
		zap.Bool("is_valid", result.IsValid),
		zap.String("conflict_type", string(result.ConflictType)),
		zap.Int("snapshot_size", snapshotSize),
		zap.Int("to_cancel", len(result.AssignmentsToCancelForEmergency)),
		zap.Int("emergency_conflicts", len(result.EmergencyConflicts)),
	}
	if !result.IsValid {
		fields = append(fields, zap.String("reason", result.ErrorMessage))
	}
	logger.Info("Assignment validated", fields...)
}
