package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shortcut-sensei/sitesync/pkg/history"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyFiles bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB(appConfig.Server.HistoryDatabase)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		if err = history.SetupSchema(db); err != nil {
			return fmt.Errorf("failed to setup history schema: %w", err)
		}
		store, err := history.NewStore(db)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		runs, err := store.RecentRuns(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tMODE\tSTARTED\tUPDATED\tSKIPPED\tFAILED\tTOTAL\tSITE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				r.ID, r.Mode, r.Started.Format(time.DateTime),
				r.Updated, r.Skipped, r.Failed, r.Total, r.SiteDir)
			if !historyFiles {
				continue
			}
			files, err := store.RunFiles(ctx, r.ID)
			if err != nil {
				return fmt.Errorf("failed to list files of run %d: %w", r.ID, err)
			}
			for _, f := range files {
				fmt.Fprintf(tw, "\t%s\t%s\t%s\n", f.Status, f.Path, f.Error)
			}
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	historyCmd.Flags().BoolVar(&historyFiles, "files", false, "list the per-page outcome of each run")
	rootCmd.AddCommand(historyCmd)
}
