package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the chunk store and vector index from the input set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline()
		if err != nil {
			return err
		}
		report, err := pipeline.Build(cmd.Context())
		if err != nil {
			return err
		}

		// Individual document failures never fail the build.
		for _, o := range report.Failures() {
			fmt.Printf("FAILED  %-30s %s: %v\n", o.File, o.Stage, o.Err)
		}
		if !report.Indexed {
			state := "no previous index exists"
			if pipeline.Indexed() {
				state = "previous index left untouched"
			}
			fmt.Printf("No content indexed: %d documents yielded 0 vectors; %s.\n",
				len(report.Documents), state)
			return nil
		}
		fmt.Printf("Indexed %d chunks from %d documents (%d failed), generation %s.\n",
			report.Vectors, len(report.Documents), len(report.Failures()), report.Manifest.Generation)
		return nil
	},
}
