package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shortcut-sensei/sitesync/pkg/audit"
	"github.com/shortcut-sensei/sitesync/pkg/pages"
	"github.com/spf13/cobra"
)

var checkScan string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every page has one header, one footer and the shared assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := scanSite(checkScan)
		if err != nil {
			return err
		}
		tc := appConfig.Templates
		var bad int
		for _, path := range paths {
			rep, err := inspectFile(path, tc.StylesheetHref, tc.ScriptSrc)
			if err != nil {
				logger.Error("Failed to inspect page", "path", path, "error", err)
				bad++
				continue
			}
			if !rep.OK() {
				bad++
				for _, v := range rep.Violations {
					logger.Warn("Structural check failed", "page", filepath.Base(path), "problem", v)
				}
			}
		}
		logger.Info("Check complete", "pages", len(paths), "failing", bad)
		if bad > 0 {
			return fmt.Errorf("%d of %d pages failed the structural check", bad, len(paths))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkScan, "scan", string(pages.ScanGlobMode), "page discovery: glob or allowlist")
	rootCmd.AddCommand(checkCmd)
}

func inspectFile(path, stylesheet, script string) (*audit.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return audit.Inspect(path, f, stylesheet, script)
}
