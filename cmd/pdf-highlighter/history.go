package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-highlighter/internal/index"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded highlighting runs",
	Long: `History lists runs recorded in the history index (runs started with
--index), newest first. With --run it prints the per-document outcomes of
one run instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := index.Open(appConfig().Index.Dir)
		if err != nil {
			return err
		}
		defer store.Close()

		if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
			docs, err := store.Documents(runID)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Printf("no documents recorded for run %d\n", runID)
				return nil
			}
			for _, d := range docs {
				if d.Failed() {
					fmt.Printf("failed: %s (%s)\n", d.Source, d.Err)
					continue
				}
				fmt.Printf("highlighted: %s (%d hits)\n", d.Source, d.Hits)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		return store.List(os.Stdout, limit)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show per-document outcomes for one run id")

	rootCmd.AddCommand(historyCmd)
}
