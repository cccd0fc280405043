package rules

import (
	"time"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
)

var (
	day     = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	nextDay = day.AddDate(0, 0, 1)
)

func candidateFor(worker, property, unit string) scheduling.AssignmentCandidate {
	return scheduling.AssignmentCandidate{
		RequestID:     "new-request",
		PropertyCode:  property,
		UnitNumber:    unit,
		ScheduledDate: day,
		WorkerEmail:   worker,
	}
}

func assignment(id, worker, property, unit string, status scheduling.Status) scheduling.ExistingAssignment {
	return scheduling.ExistingAssignment{
		RequestID:       id,
		PropertyCode:    property,
		UnitNumber:      unit,
		WorkerEmail:     worker,
		ScheduledDate:   day,
		Status:          status,
		WorkOrderNumber: "WO-" + id,
	}
}

func emergency(a scheduling.ExistingAssignment) scheduling.ExistingAssignment {
	a.IsEmergency = true
	return a
}

func onDate(a scheduling.ExistingAssignment, date time.Time) scheduling.ExistingAssignment {
	a.ScheduledDate = date
	return a
}

func ids(assignments []scheduling.ExistingAssignment) []string {
	result := make([]string, len(assignments))
	for i, a := range assignments {
		result[i] = a.RequestID
	}
	return result
}
