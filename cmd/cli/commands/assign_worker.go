package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/pkg/core/services"
)

// AssignWorkerCmd creates the assignWorker command
func AssignWorkerCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignWorker",
		Short: "Assign a worker to a repair request, applying emergency cancellations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := candidateFromFlags(cmd, app.Engine.Normalizer)
			if err != nil {
				return err
			}
			workOrder, _ := cmd.Flags().GetString("work-order")

			app.Logger.Debug("assignWorker command",
				zap.String("work_order_number", workOrder),
				zap.Bool("is_emergency", candidate.IsEmergency))

			result, err := services.AssignWorker(app.Ctx, app.Database, app.Engine, app.Logger, candidate, workOrder)
			if err != nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			out := cmd.OutOrStdout()
			printValidation(out, result.Validation)

			if result.Assignment == nil {
				return nil
			}

			fmt.Fprintf(out, "Assignment ID: %s\n", result.Assignment.ID)
			fmt.Fprintf(out, "Request ID:    %s\n", result.Assignment.RequestID)
			fmt.Fprintf(out, "Scheduled:     %s\n", result.Assignment.ScheduledDate)

			if result.Override != nil {
				if len(result.Override.Cancellation.CancelledAssignments) > 0 {
					fmt.Fprintf(out, "\nCancelled:\n")
					for _, c := range result.Override.Cancellation.CancelledAssignments {
						fmt.Fprintf(out, "  ✗ %s\n    %s\n", c.Assignment.RequestID, c.CancellationReason)
					}
				}
				if len(result.Override.StandingDisplaced) > 0 {
					fmt.Fprintf(out, "\n⚠️  Standing work displaced, reschedule in config:\n")
					for _, a := range result.Override.StandingDisplaced {
						fmt.Fprintf(out, "  • %s\n", describeAssignment(a))
					}
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	addCandidateFlags(cmd)
	cmd.Flags().String("work-order", "", "Work order number for the new assignment")
	return cmd
}
