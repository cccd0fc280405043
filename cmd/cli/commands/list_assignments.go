package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/maintenance-tracker/pkg/core/services"
)

// ListAssignmentsCmd creates the listAssignments command
func ListAssignmentsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listAssignments <property_code> [date]",
		Short: "List active assignments at a property (optionally on one date)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date *time.Time
			if len(args) > 1 {
				parsed, err := time.Parse("2006-01-02", args[1])
				if err != nil {
					return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
				}
				date = &parsed
			}

			assignments, err := services.ListActiveAssignments(app.Ctx, app.Database, app.Engine, app.Logger, args[0], date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d active assignments:\n\n", len(assignments))
			for _, a := range assignments {
				fmt.Fprintf(out, "- %s\n", describeAssignment(a))
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
