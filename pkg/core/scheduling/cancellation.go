package scheduling

import "fmt"

// ProcessEmergencyOverride turns the assignments displaced by an emergency into an
// auditable cancellation result. Every input assignment gets exactly one entry; the
// caller is responsible for moving the records to Cancelled and notifying people.
func ProcessEmergencyOverride(toCancel []ExistingAssignment) CancellationResult {
	result := CancellationResult{
		CancelledRequestIDs:  make(map[string]bool, len(toCancel)),
		CancelledAssignments: make([]CancelledAssignment, 0, len(toCancel)),
	}

	for _, a := range toCancel {
		result.CancelledRequestIDs[a.RequestID] = true
		result.CancelledAssignments = append(result.CancelledAssignments, CancelledAssignment{
			Assignment:         a,
			CancellationReason: cancellationReason(a),
		})
	}

	return result
}

func cancellationReason(a ExistingAssignment) string {
	return fmt.Sprintf("Cancelled by emergency override (previous worker: %s, work order: %s, scheduled: %s)",
		a.WorkerEmail, a.WorkOrderNumber, a.ScheduledDate.Format("2006-01-02"))
}
