package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	topKFlag       int
	chunkLimitFlag int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the index; one ranked result per document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline()
		if err != nil {
			return err
		}
		hits, err := pipeline.Search(cmd.Context(), args[0], topKFlag, chunkLimitFlag)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for i, h := range hits {
			fmt.Printf("%2d. %s#%d  distance=%.4f\n    %s\n", i+1, h.File, h.Seq, h.Distance, h.Text)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&topKFlag, "top-k", "k", 0, "Documents to return (default from config)")
	searchCmd.Flags().IntVarP(&chunkLimitFlag, "chunk-limit", "l", 0, "Neighbour candidates before dedup (default from config)")
}
