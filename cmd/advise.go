package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-soiladvisor/advisory"
	"go-soiladvisor/models"
	"go-soiladvisor/rules"
)

var adviseReq = models.AdvisoryRequest{
	State: models.DefaultState,
	Crop:  models.DefaultCrop,
}

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Request a one-shot advisory in the terminal",
	Long: `Sends the readings to the configured backend and prints the current and
suggested levels, the control actions and the overview.

Example:
  soiladvisor advise --n 12 --p 8 --k 90 --ph 5.4 --moisture 22 --crop Wheat --state Punjab`,
	Args: cobra.NoArgs,
	RunE: runAdvise,
}

func init() {
	f := adviseCmd.Flags()
	f.StringVar((*string)(&adviseReq.Reading.Nitrogen), "n", "", "nitrogen in mg/kg")
	f.StringVar((*string)(&adviseReq.Reading.Phosphorus), "p", "", "phosphorus in mg/kg")
	f.StringVar((*string)(&adviseReq.Reading.Potassium), "k", "", "potassium in mg/kg")
	f.StringVar((*string)(&adviseReq.Reading.PH), "ph", "", "soil pH")
	f.StringVar((*string)(&adviseReq.Reading.Moisture), "moisture", "", "soil moisture in percent")
	f.StringVar(&adviseReq.Crop, "crop", models.DefaultCrop, "crop name")
	f.StringVar(&adviseReq.State, "state", models.DefaultState, "state or union territory")
	f.StringVar(&adviseReq.Date, "date", "", "date as YYYY-MM-DD, defaults to today")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	if err := adviseReq.Validate(); err != nil {
		return err
	}

	gen, err := advisory.NewGenerator(cmd.Context(), cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	result := advisory.NewService(gen, logger).Advise(cmd.Context(), adviseReq, models.SuggestedLevels{})
	r, err := newRenderer(renderWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), r.Result(result, rules.EvaluateReading(adviseReq.Reading)))
	if result.Failed {
		return fmt.Errorf("advisory failed")
	}
	return nil
}
