package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
)

// addCandidateFlags registers the flags describing a candidate assignment
func addCandidateFlags(cmd *cobra.Command) {
	cmd.Flags().String("request-id", "", "Repair request ID (generated when empty)")
	cmd.Flags().String("property", "", "Property code")
	cmd.Flags().String("unit", "", "Unit number")
	cmd.Flags().String("date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().String("worker", "", "Worker email")
	cmd.Flags().String("worker-specialization", "", "Worker's trade, e.g. Plumber")
	cmd.Flags().String("required", "", "Trade the request needs, e.g. Plumbing")
	cmd.Flags().String("description", "", "Request description, used to infer --required when it is not given")
	cmd.Flags().Bool("emergency", false, "Mark the request as an emergency")
}

// candidateFromFlags reads a candidate from the flags added by addCandidateFlags
func candidateFromFlags(cmd *cobra.Command, normalizer *specialization.Normalizer) (scheduling.AssignmentCandidate, error) {
	requestID, _ := cmd.Flags().GetString("request-id")
	property, _ := cmd.Flags().GetString("property")
	unit, _ := cmd.Flags().GetString("unit")
	dateStr, _ := cmd.Flags().GetString("date")
	worker, _ := cmd.Flags().GetString("worker")
	workerSpecialization, _ := cmd.Flags().GetString("worker-specialization")
	required, _ := cmd.Flags().GetString("required")
	description, _ := cmd.Flags().GetString("description")
	emergency, _ := cmd.Flags().GetBool("emergency")

	var missing []string
	for name, value := range map[string]string{"property": property, "unit": unit, "date": dateStr, "worker": worker} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return scheduling.AssignmentCandidate{}, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return scheduling.AssignmentCandidate{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}

	if strings.TrimSpace(required) == "" && strings.TrimSpace(description) != "" {
		if category, ok := normalizer.Infer(description); ok {
			required = string(category)
		}
	}

	return scheduling.AssignmentCandidate{
		RequestID:              strings.TrimSpace(requestID),
		PropertyCode:           strings.TrimSpace(property),
		UnitNumber:             strings.TrimSpace(unit),
		ScheduledDate:          date,
		WorkerEmail:            strings.TrimSpace(worker),
		WorkerSpecialization:   workerSpecialization,
		RequiredSpecialization: required,
		IsEmergency:            emergency,
	}, nil
}

// printValidation writes a validation decision and its side effects
func printValidation(w io.Writer, result scheduling.ValidationResult) {
	if !result.IsValid {
		fmt.Fprintf(w, "\n❌ Rejected: %s\n", result.ConflictType)
		fmt.Fprintf(w, "   %s\n\n", result.ErrorMessage)
		return
	}

	fmt.Fprintf(w, "\n✅ Valid\n")

	if len(result.AssignmentsToCancelForEmergency) > 0 {
		fmt.Fprintf(w, "\n⚠️  Emergency override cancels %d assignment(s):\n", len(result.AssignmentsToCancelForEmergency))
		for _, a := range result.AssignmentsToCancelForEmergency {
			fmt.Fprintf(w, "  • %s\n", describeAssignment(a))
		}
	}

	if result.HasEmergencyConflicts {
		fmt.Fprintf(w, "\n🚨 Emergency conflicts needing manual attention (%d):\n", len(result.EmergencyConflicts))
		for _, a := range result.EmergencyConflicts {
			fmt.Fprintf(w, "  • %s\n", describeAssignment(a))
		}
	}
	fmt.Fprintln(w)
}

func describeAssignment(a scheduling.ExistingAssignment) string {
	emergency := ""
	if a.IsEmergency {
		emergency = " [EMERGENCY]"
	}
	return fmt.Sprintf("%s %s Unit %s - %s - %s (%s, %s)%s",
		a.ScheduledDate.Format("2006-01-02"),
		a.PropertyCode,
		a.UnitNumber,
		a.WorkerEmail,
		a.WorkOrderNumber,
		a.Status,
		a.RequestID,
		emergency,
	)
}
