package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/maintenance-tracker/pkg/core/services"
)

// ValidateAssignmentCmd creates the validateAssignment command
func ValidateAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validateAssignment",
		Short: "Check whether a worker can take an assignment (nothing is saved)",
		Long: `Build the current snapshot for the property and worker, then run the conflict rules
against the candidate. Emergency side effects are printed but not applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := candidateFromFlags(cmd, app.Engine.Normalizer)
			if err != nil {
				return err
			}

			result, err := services.ValidateAssignment(app.Ctx, app.Database, app.Engine, app.Logger, candidate)
			if err != nil {
				return err
			}

			printValidation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	addCandidateFlags(cmd)
	return cmd
}
