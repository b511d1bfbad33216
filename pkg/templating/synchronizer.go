package templating

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"github.com/shortcut-sensei/sitesync/pkg/pages"
)

// Mode selects the transform pipeline a Synchronizer runs.
type Mode string

const (
	// ModePages replaces headers, injects the footer and ensures assets.
	ModePages Mode = "pages"
	// ModeHeaders fixes titles and assets, replaces headers from the
	// header template and marks the active navigation entry.
	ModeHeaders Mode = "headers"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModePages:
		return ModePages, nil
	case ModeHeaders:
		return ModeHeaders, nil
	}
	return "", fmt.Errorf("unknown sync mode %q (want %q or %q)", s, ModePages, ModeHeaders)
}

// FileStatus is the outcome of synchronizing one page.
type FileStatus string

const (
	StatusUpdated FileStatus = "updated"
	StatusSkipped FileStatus = "skipped"
	StatusFailed  FileStatus = "failed"
)

// FileResult records what happened to one page during a run.
type FileResult struct {
	Path   string
	Status FileStatus
	Err    error
}

// Summary is the tally of a batch run.
type Summary struct {
	Mode     Mode
	Started  time.Time
	Finished time.Time
	Updated  int
	Skipped  int
	Failed   int
	Total    int
	Files    []FileResult
}

func (s *Summary) add(res FileResult) {
	switch res.Status {
	case StatusUpdated:
		s.Updated++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
	s.Files = append(s.Files, res)
}

// Synchronizer is the central controller for keeping pages consistent.
// It holds the configuration, the loaded fragments and the compiled header,
// footer and navigation transforms for one pipeline, and applies them to the
// pages of a site directory. Pages are rewritten atomically and only when the
// pipeline changed them, so running it twice leaves the site untouched.
// All methods are concurrent-safe; Refresh may run while pages are synced.
type Synchronizer struct {
	logger     *slog.Logger
	config     *TemplateConfig
	mode       Mode
	siteDir    string
	fragments  *Fragments
	header     *HeaderReplacer
	footer     string
	navMarkers map[string]*NavMarker
	appsMarker *NavMarker
	mu         sync.RWMutex
}

// NewSynchronizer creates, initializes, and returns a new Synchronizer.
// It requires a logger, the pipeline to run, a configuration (nil selects
// DefaultConfig) and the site directory, which in headers mode may hold the
// header template named by config.HeaderTemplateFile. It performs an initial
// Refresh to load the fragments and compile the transforms.
func NewSynchronizer(logger *slog.Logger, mode Mode, config *TemplateConfig, siteDir string) (*Synchronizer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Synchronizer{
		logger:  logger,
		config:  config,
		mode:    mode,
		siteDir: siteDir,
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	logger.Debug("Synchronizer initialized", "mode", mode, "site_dir", siteDir)
	return s, nil
}

// Refresh reloads the embedded fragments and the header template file so a
// changed template takes effect without restarting. A missing or unreadable
// template is logged and the built-in header is used instead.
func (s *Synchronizer) Refresh() error {
	fragments, err := DefaultFragments()
	if err != nil {
		return err
	}

	header := fragments.Header
	if s.mode == ModeHeaders {
		path := filepath.Join(s.siteDir, s.config.HeaderTemplateFile)
		var found bool
		header, found, err = LoadHeaderTemplate(path, fragments.BasicHeader)
		if err != nil {
			s.logger.Warn("Could not read header template, using the built-in header", "path", path, "error", err)
			header = fragments.BasicHeader
		} else if !found {
			s.logger.Warn("No header template found, using the built-in header", "path", path)
		} else {
			s.logger.Info("Loaded header template", "path", path)
		}
	}

	var navMarkers map[string]*NavMarker
	var appsMarker *NavMarker
	if s.mode == ModeHeaders {
		navMarkers = make(map[string]*NavMarker, len(s.config.NavLabels))
		for name, label := range s.config.NavLabels {
			navMarkers[name] = NewNavMarker("", label)
		}
		appsMarker = NewNavMarker(s.config.ApplicationsHref, s.config.ApplicationsLabel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments = fragments
	s.header = NewHeaderReplacer(header)
	s.footer = fragments.FooterBlock()
	s.navMarkers = navMarkers
	s.appsMarker = appsMarker
	return nil
}

// Mode returns the pipeline this Synchronizer runs.
func (s *Synchronizer) Mode() Mode {
	return s.mode
}

// Apply runs the pipeline over text for the page named filename and reports
// whether anything changed. It performs no I/O.
func (s *Synchronizer) Apply(text, filename string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := filepath.Base(filename)
	out := text
	switch s.mode {
	case ModeHeaders:
		if title, ok := s.config.Titles[name]; ok {
			out = SetTitle(out, title)
		}
		out = s.ensureAssets(out)
		out = s.header.Replace(out)
		out = s.markActive(out, name)
	default:
		if s.config.SentinelMarker == "" || !strings.Contains(out, s.config.SentinelMarker) {
			out = s.header.Replace(out)
			out = InjectFooter(out, s.footer)
		}
		out = s.ensureAssets(out)
	}
	return out, out != text
}

func (s *Synchronizer) ensureAssets(text string) string {
	text = EnsureStylesheet(text, s.config.StylesheetHref)
	return EnsureScript(text, s.config.ScriptSrc)
}

func (s *Synchronizer) markActive(text, name string) string {
	text = ClearActiveNav(text)
	if m, ok := s.navMarkers[name]; ok {
		return m.Mark(text)
	}
	if pages.IsPageName(name) {
		return s.appsMarker.Mark(text)
	}
	return text
}

// SyncFile loads one page, applies the pipeline and atomically writes the
// result back when it differs.
func (s *Synchronizer) SyncFile(path string) FileResult {
	page, err := pages.Load(path, s.config.SentinelMarker)
	if err != nil {
		s.logger.Error("Failed to read page", "path", path, "error", err)
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}

	out, changed := s.Apply(page.Content, page.Name)
	if !changed {
		s.logger.Info("No changes needed", "page", page.Name, "synced", page.Synced)
		return FileResult{Path: path, Status: StatusSkipped}
	}

	if err = atomic.WriteFile(path, strings.NewReader(out)); err != nil {
		err = fmt.Errorf("failed to write page %s: %w", path, err)
		s.logger.Error("Failed to write page", "path", path, "error", err)
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}
	s.logger.Info("Updated page", "page", page.Name)
	return FileResult{Path: path, Status: StatusUpdated}
}

// Run synchronizes every path in order and returns the tally of the batch.
// A page that cannot be read or written is logged, recorded as failed and the
// batch moves on, so the summary always accounts for every path. The summary
// is also logged once the batch is finished.
func (s *Synchronizer) Run(paths []string) *Summary {
	summary := &Summary{Mode: s.mode, Started: time.Now(), Total: len(paths)}
	s.logger.Info("Starting sync", "mode", s.mode, "pages", len(paths))
	for _, path := range paths {
		summary.add(s.SyncFile(path))
	}
	summary.Finished = time.Now()
	s.logger.Info("Sync complete",
		"mode", s.mode,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"total", summary.Total,
		"elapsed", summary.Finished.Sub(summary.Started))
	return summary
}
