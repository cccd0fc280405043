package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NormalizeSpecializationCmd creates the normalizeSpecialization command
func NormalizeSpecializationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalizeSpecialization <text>",
		Short: "Show the canonical category for a trade or role",
		Args:  cobra.MinimumNArgs(1),

		Annotations: map[string]string{skipDatabase: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", text, app.Engine.Normalizer.Canonicalize(text))
			return nil
		},
	}
}

// InferSpecializationCmd creates the inferSpecialization command
func InferSpecializationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inferSpecialization <description...>",
		Short: "Guess the required trade from a request description",
		Args:  cobra.MinimumNArgs(1),

		Annotations: map[string]string{skipDatabase: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := app.Engine.Normalizer.Infer(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No specialization found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), category)
			return nil
		},
	}
}
