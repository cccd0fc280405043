package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/db"
)

// ListActiveAssignments returns the active assignments at a property, ordered by date then
// unit. With a date, only that day is listed and standing work occurring on it is included.
func ListActiveAssignments(ctx context.Context, store db.AssignmentReader, engine *Engine, logger *zap.Logger, propertyCode string, date *time.Time) (scheduling.Snapshot, error) {
	propertyCode = strings.TrimSpace(propertyCode)
	if propertyCode == "" {
		return nil, fmt.Errorf("property code is required")
	}

	var records []db.Assignment
	var err error
	if date != nil {
		records, err = store.GetAssignmentsForDate(ctx, propertyCode, scheduling.DateOnly(*date))
	} else {
		records, err = store.GetActiveAssignments(ctx, db.SnapshotFilter{PropertyCode: propertyCode})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	snapshot, err := db.ToSnapshot(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	if date != nil {
		snapshot = append(snapshot, standingOn(engine.Standing, *date, func(s StandingAssignment) bool {
			return strings.EqualFold(strings.TrimSpace(s.PropertyCode), propertyCode)
		})...)
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		if !scheduling.SameDay(snapshot[i].ScheduledDate, snapshot[j].ScheduledDate) {
			return snapshot[i].ScheduledDate.Before(snapshot[j].ScheduledDate)
		}
		return snapshot[i].UnitNumber < snapshot[j].UnitNumber
	})

	logger.Debug("Listed active assignments",
		zap.String("property_code", propertyCode),
		zap.Int("count", len(snapshot)))

	return snapshot, nil
}
