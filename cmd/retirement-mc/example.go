package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/biswassantanu/retirement-mc/internal/config"
)

var exampleOut string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example parameter file to get started",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveParameters(exampleOut, config.ExampleParameters()); err != nil {
			return eris.Wrap(err, "write example parameters")
		}
		fmt.Printf("wrote %s\n", exampleOut)
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringVarP(&exampleOut, "output", "o", "params.yaml", "destination file")
	rootCmd.AddCommand(exampleCmd)
}
