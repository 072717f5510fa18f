package commands

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/rainy-day/internal/domain"
)

// SoilsCmd creates the soils command
func SoilsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soils",
		Short: "List the supported soil types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := checkFormat(output); err != nil {
				return err
			}
			return renderSoils(app.Out, domain.Soils(), output)
		},
	}
	cmd.Flags().StringP("output", "o", formatText, "Output format: text, json or yaml")
	return cmd
}
