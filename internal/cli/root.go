package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the sdkdocs CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Extract SDK method documentation from OpenAPI specs and example snippets",
		Long:          "sdkdocs reads the versioned OpenAPI documents and per-platform example snippets of a documentation tree and assembles per-service SDK method reference data.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	flagErr := func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	}
	cmd.SetFlagErrorFunc(flagErr)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	cmd.PersistentFlags().String("root", ".", "Documentation tree holding app/config/specs and docs/examples")

	for _, sub := range []*cobra.Command{newServiceCmd(), newServicesCmd(), newExportCmd(), newInitCmd()} {
		sub.SetFlagErrorFunc(flagErr)
		cmd.AddCommand(sub)
	}

	return cmd
}
