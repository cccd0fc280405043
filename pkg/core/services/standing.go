package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

// standingRequestPrefix marks request IDs generated for standing assignment occurrences.
// They exist only in config, so the store never holds a row for them.
const standingRequestPrefix = "standing-"

// StandingAssignment is recurring work from config with its RRule parsed
type StandingAssignment struct {
	Recurrence      *rrule.RRule
	PropertyCode    string
	UnitNumber      string
	WorkerEmail     string
	WorkOrderNumber string
	IsEmergency     bool
}

// convertStandingAssignments parses each config entry's RRule anchored at its start date
func convertStandingAssignments(configStanding []config.StandingAssignment) ([]StandingAssignment, error) {
	result := make([]StandingAssignment, 0, len(configStanding))

	for i, s := range configStanding {
		rule, err := rrule.StrToRRule(s.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for standing assignment %d: %w", i, err)
		}

		start, err := s.StartDate()
		if err != nil {
			return nil, fmt.Errorf("failed to parse start for standing assignment %d: %w", i, err)
		}
		rule.DTStart(start)

		result = append(result, StandingAssignment{
			Recurrence:      rule,
			PropertyCode:    s.PropertyCode,
			UnitNumber:      s.UnitNumber,
			WorkerEmail:     s.WorkerEmail,
			WorkOrderNumber: s.WorkOrderNumber,
			IsEmergency:     s.IsEmergency,
		})
	}

	return result, nil
}

// OccursOn reports whether the recurrence has an occurrence on the calendar date of day
func (s StandingAssignment) OccursOn(day time.Time) bool {
	dayStart := scheduling.DateOnly(day)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return len(s.Recurrence.Between(dayStart, dayEnd, true)) > 0
}

// On returns the occurrence on day as a Scheduled assignment. The request ID is derived
// from the work order, unit and date so repeated calls agree.
func (s StandingAssignment) On(day time.Time) scheduling.ExistingAssignment {
	date := scheduling.DateOnly(day)
	name := strings.Join([]string{s.WorkOrderNumber, s.PropertyCode, s.UnitNumber, date.Format("2006-01-02")}, "/")

	return scheduling.ExistingAssignment{
		RequestID:       standingRequestPrefix + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
		PropertyCode:    s.PropertyCode,
		UnitNumber:      s.UnitNumber,
		WorkerEmail:     s.WorkerEmail,
		ScheduledDate:   date,
		Status:          scheduling.StatusScheduled,
		IsEmergency:     s.IsEmergency,
		WorkOrderNumber: s.WorkOrderNumber,
	}
}

// standingOn returns the occurrences on day that match keep, in config order
func standingOn(standing []StandingAssignment, day time.Time, keep func(StandingAssignment) bool) []scheduling.ExistingAssignment {
	var occurrences []scheduling.ExistingAssignment
	for _, s := range standing {
		if keep(s) && s.OccursOn(day) {
			occurrences = append(occurrences, s.On(day))
		}
	}
	return occurrences
}

func isStanding(a scheduling.ExistingAssignment) bool {
	return strings.HasPrefix(a.RequestID, standingRequestPrefix)
}
