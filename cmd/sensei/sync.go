package main

import (
	"context"

	"github.com/shortcut-sensei/sitesync/pkg/history"
	"github.com/shortcut-sensei/sitesync/pkg/pages"
	"github.com/shortcut-sensei/sitesync/pkg/templating"
	"github.com/spf13/cobra"
)

var (
	syncScan    string
	headersScan string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Give every page the standard header and footer",
	Long: `sync replaces the header of every page with the standard site header,
injects the standard footer, notification container and scripts before
</body>, and makes sure the shared stylesheet and navigation script are linked.
Pages that already carry the standard footer only get the asset check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), templating.ModePages, syncScan)
	},
}

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Normalize titles, headers and the active navigation entry",
	Long: `headers sets the canonical <title> of known pages, makes sure the shared
assets are linked, replaces the header with header-template.html (or the
built-in header when that file is missing) and marks the navigation entry of
the current page as active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), templating.ModeHeaders, headersScan)
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncScan, "scan", string(pages.ScanGlobMode), "page discovery: glob or allowlist")
	headersCmd.Flags().StringVar(&headersScan, "scan", string(pages.ScanAllowListMode), "page discovery: glob or allowlist")
	rootCmd.AddCommand(syncCmd, headersCmd)
}

func scanSite(scan string) ([]string, error) {
	mode, err := pages.ParseScanMode(scan)
	if err != nil {
		return nil, err
	}
	tc := appConfig.Templates
	return pages.Scan(appConfig.Server.SiteDir, mode, tc.ExcludeFiles, tc.AllowList)
}

// runSync never fails because of individual pages; those are logged and
// counted in the summary.
func runSync(ctx context.Context, mode templating.Mode, scan string) error {
	dir := appConfig.Server.SiteDir
	paths, err := scanSite(scan)
	if err != nil {
		return err
	}
	logger.Info("Found pages to process", "count", len(paths), "site_dir", dir, "scan", scan)

	syncer, err := templating.NewSynchronizer(logger, mode, appConfig.Templates, dir)
	if err != nil {
		return err
	}
	summary := syncer.Run(paths)
	recordRun(ctx, dir, summary)
	return nil
}

// recordRun stores summary in the history database. Failures are logged only.
func recordRun(ctx context.Context, dir string, summary *templating.Summary) {
	if !appConfig.Server.HistoryEnabled {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := openHistoryDB(appConfig.Server.HistoryDatabase)
	if err != nil {
		logger.Error("Failed to open history database", "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close history database", "error", err)
		}
	}()

	if err = history.SetupSchema(db); err != nil {
		logger.Error("Failed to setup history schema", "error", err)
		return
	}
	store, err := history.NewStore(db)
	if err != nil {
		logger.Error("Failed to prepare history store", "error", err)
		return
	}
	defer store.Close()

	runID, err := store.RecordRun(ctx, dir, summary)
	if err != nil {
		logger.Error("Failed to record run", "error", err)
		return
	}
	logger.Debug("Run recorded", "run_id", runID)
}
