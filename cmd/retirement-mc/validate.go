package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/biswassantanu/retirement-mc/internal/config"
	"github.com/biswassantanu/retirement-mc/internal/simulation"
)

var validateParamsFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a parameter file without running a simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := config.ReadParameters(validateParamsFile)
		if err != nil {
			return eris.Wrap(err, "read parameters")
		}
		// Validate what simulate would actually run: config defaults included.
		applySimulationDefaults(params)
		if err := simulation.Validate(params); err != nil {
			return eris.Wrap(err, "validate parameters")
		}
		fmt.Printf("%s: valid (%d simulated years, %d trials)\n",
			validateParamsFile, params.Years(), params.Simulation.Trials)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateParamsFile, "params", "p", "params.yaml", "parameter file (YAML)")
	rootCmd.AddCommand(validateCmd)
}
