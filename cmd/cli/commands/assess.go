package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/rainy-day/internal/domain"
)

// AssessCmd creates the assess command
func AssessCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess flood risk for a soil from manual rainfall or current weather",
		Example: `  cli assess --soil clay --rainfall 30
  cli assess --soil sandy-loam --location Nairobi --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			soil, _ := cmd.Flags().GetString("soil")
			rainfall, _ := cmd.Flags().GetString("rainfall")
			location, _ := cmd.Flags().GetString("location")
			output, _ := cmd.Flags().GetString("output")

			if err := checkFormat(output); err != nil {
				return err
			}

			var (
				rec domain.AssessmentRecord
				err error
			)
			if cmd.Flags().Changed("location") {
				rec, err = app.Advisor.AssessLocation(cmd.Context(), location, soil)
			} else {
				// Soil is resolved before rainfall, as the engine does.
				if _, err := domain.LookupSoil(soil); err != nil {
					return err
				}
				var mm float64
				mm, err = domain.ParseRainfall(rainfall)
				if err != nil {
					return err
				}
				rec, err = app.Advisor.AssessManual(cmd.Context(), mm, soil)
			}
			if err != nil {
				return fmt.Errorf("assessment failed: %w", err)
			}

			return renderRecord(app.Out, rec, output)
		},
	}

	cmd.Flags().String("soil", "", "Soil type id, see the soils command")
	cmd.Flags().String("rainfall", "", "Rainfall over the last 24 hours in mm")
	cmd.Flags().String("location", "", "City to fetch current weather for")
	cmd.Flags().StringP("output", "o", formatText, "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("soil")
	cmd.MarkFlagsMutuallyExclusive("rainfall", "location")
	cmd.MarkFlagsOneRequired("rainfall", "location")

	return cmd
}
