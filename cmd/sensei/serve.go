package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shortcut-sensei/sitesync/pkg/pages"
	"github.com/shortcut-sensei/sitesync/pkg/templating"
	"github.com/spf13/cobra"
)

var (
	servePort  int
	serveWatch bool
	serveMode  string
	serveScan  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over plain HTTP",
	Long: `serve hosts the site directory on a local HTTP server. With --watch, pages
are re-synced as they are saved. In headers mode, editing header-template.html
reloads the template and re-syncs every page in scope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dir := appConfig.Server.SiteDir
		port := appConfig.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		if serveWatch {
			if err := startWatch(ctx, dir); err != nil {
				return err
			}
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newSiteHandler(dir),
		}
		go func() {
			<-ctx.Done()
			logger.Info("Stopping server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server shutdown failed", "error", err)
			}
		}()

		base := fmt.Sprintf("http://localhost:%d", port)
		logger.Info("Shortcut Sensei is running", "site_dir", dir, "url", base+"/index.html")
		for _, p := range []string{"all-applications.html", "blogs.html", "About.htm"} {
			logger.Info("Main page", "url", base+"/"+p)
		}

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server on port %d: %w", port, err)
		}
		logger.Info("Server stopped.")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to serve the site on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "re-sync pages when they change")
	serveCmd.Flags().StringVar(&serveMode, "mode", string(templating.ModePages), "pipeline used by --watch: pages or headers")
	serveCmd.Flags().StringVar(&serveScan, "scan", "", "pages watched by --watch: glob or allowlist (default: glob for pages, allowlist for headers)")
	rootCmd.AddCommand(serveCmd)
}

// newSiteHandler serves dir without caching and without directory listings.
func newSiteHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(r.URL.Path), "index.html")); err != nil {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		fs.ServeHTTP(w, r)
	})
}

// startWatch re-syncs pages of dir as they change until ctx is done.
func startWatch(ctx context.Context, dir string) error {
	mode, err := templating.ParseMode(serveMode)
	if err != nil {
		return err
	}
	scan := serveScan
	if scan == "" {
		scan = string(defaultScan(mode))
	}
	scanMode, err := pages.ParseScanMode(scan)
	if err != nil {
		return err
	}
	syncer, err := templating.NewSynchronizer(logger, mode, appConfig.Templates, dir)
	if err != nil {
		return err
	}

	tc := appConfig.Templates
	h := &watchHandler{
		syncer:       syncer,
		templateFile: tc.HeaderTemplateFile,
		rescan: func() ([]string, error) {
			return pages.Scan(dir, scanMode, tc.ExcludeFiles, tc.AllowList)
		},
		record: func(summary *templating.Summary) {
			recordRun(ctx, dir, summary)
		},
	}
	inScope := scopeFilter(scanMode, tc)
	watcher, err := pages.NewWatcher(dir, func(name string) bool {
		if name == tc.HeaderTemplateFile {
			return mode == templating.ModeHeaders
		}
		return inScope(name)
	}, logger)
	if err != nil {
		return err
	}

	go func() {
		defer func() {
			_ = watcher.Close()
		}()
		if err := watcher.Run(ctx, h.onChange); err != nil {
			logger.Error("Watcher stopped", "error", err)
		}
	}()
	logger.Info("Watching for page changes", "site_dir", dir, "mode", mode, "scan", scanMode)
	return nil
}

// defaultScan is the page discovery the matching batch command uses.
func defaultScan(mode templating.Mode) pages.ScanMode {
	if mode == templating.ModeHeaders {
		return pages.ScanAllowListMode
	}
	return pages.ScanGlobMode
}

// scopeFilter reports whether a page name belongs to the pages scan selects.
func scopeFilter(scan pages.ScanMode, tc *templating.TemplateConfig) func(name string) bool {
	if scan == pages.ScanAllowListMode {
		allowed := make(map[string]struct{}, len(tc.AllowList))
		for _, name := range tc.AllowList {
			allowed[name] = struct{}{}
		}
		return func(name string) bool {
			_, ok := allowed[name]
			return ok
		}
	}
	return func(name string) bool {
		return pages.IsCandidate(name, tc.ExcludeFiles)
	}
}

// watchHandler reacts to the changes reported by the site watcher. A saved
// page is re-synced on its own. A saved header template only matters to the
// headers pipeline: it is reloaded and every page in scope is re-synced as
// one recorded run.
type watchHandler struct {
	syncer       *templating.Synchronizer
	templateFile string
	rescan       func() ([]string, error)
	record       func(summary *templating.Summary)
}

func (h *watchHandler) onChange(path string) {
	if filepath.Base(path) != h.templateFile {
		h.syncer.SyncFile(path)
		return
	}
	if h.syncer.Mode() != templating.ModeHeaders {
		logger.Debug("Ignoring header template change", "path", path, "mode", h.syncer.Mode())
		return
	}

	logger.Info("Header template changed, re-syncing site", "path", path)
	if err := h.syncer.Refresh(); err != nil {
		logger.Error("Failed to reload templates", "error", err)
		return
	}
	paths, err := h.rescan()
	if err != nil {
		logger.Error("Failed to scan site", "error", err)
		return
	}
	h.record(h.syncer.Run(paths))
}
