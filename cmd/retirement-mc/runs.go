package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/biswassantanu/retirement-mc/internal/journal"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent simulation runs from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return eris.Wrap(err, "open journal")
		}
		defer j.Close()

		records, err := j.ListRuns(runsLimit)
		if err != nil {
			return eris.Wrap(err, "list runs")
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN ID\tWHEN\tPARAMS\tTRIALS\tSUCCESS\tMEDIAN ENDING")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f%%\t%.0f\n",
				r.RunID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.ParamsFile,
				r.Trials,
				r.SuccessRate*100,
				r.MedianEnding)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "max runs to list")
	rootCmd.AddCommand(runsCmd)
}
