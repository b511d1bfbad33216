package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shortcut-sensei/sitesync/pkg/pages"
	"github.com/shortcut-sensei/sitesync/pkg/templating"
)

const watchPage = `<html>
<head>
    <title>Old</title>
</head>
<body>
    <header class="site-header">old</header>
    <main></main>
</body>
</html>
`

// setupWatchHandler builds a handler over a fresh site holding one
// allow-listed page and one page outside the allow-list.
func setupWatchHandler(t *testing.T, mode templating.Mode) (*watchHandler, string, *[]*templating.Summary) {
	t.Helper()
	prev := logger
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() { logger = prev })

	dir := t.TempDir()
	for _, name := range []string{"Discord.html", "notes.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(watchPage), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	tc := templating.DefaultConfig()
	syncer, err := templating.NewSynchronizer(logger, mode, tc, dir)
	if err != nil {
		t.Fatalf("NewSynchronizer() error = %v", err)
	}
	scan := defaultScan(mode)
	var recorded []*templating.Summary
	h := &watchHandler{
		syncer:       syncer,
		templateFile: tc.HeaderTemplateFile,
		rescan: func() ([]string, error) {
			return pages.Scan(dir, scan, tc.ExcludeFiles, tc.AllowList)
		},
		record: func(summary *templating.Summary) {
			recorded = append(recorded, summary)
		},
	}
	return h, dir, &recorded
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestWatchHandler_TemplateChangeHeadersMode(t *testing.T) {
	h, dir, recorded := setupWatchHandler(t, templating.ModeHeaders)
	tmpl := filepath.Join(dir, "header-template.html")
	if err := os.WriteFile(tmpl, []byte("<header class=\"custom\">new</header>\n"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	h.onChange(tmpl)

	if len(*recorded) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(*recorded))
	}
	if s := (*recorded)[0]; s.Total != 1 || s.Updated != 1 {
		t.Errorf("only the allow-listed page should be synced: %+v", s)
	}
	if !strings.Contains(readPage(t, filepath.Join(dir, "Discord.html")), `<header class="custom">new</header>`) {
		t.Error("allow-listed page did not get the new template")
	}
	if got := readPage(t, filepath.Join(dir, "notes.html")); got != watchPage {
		t.Errorf("page outside the allow-list was rewritten:\n%s", got)
	}
	if got := readPage(t, tmpl); got != "<header class=\"custom\">new</header>\n" {
		t.Errorf("header template was rewritten: %q", got)
	}

	// Saving the template again without edits changes nothing.
	h.onChange(tmpl)
	if len(*recorded) != 2 {
		t.Fatalf("expected two recorded runs, got %d", len(*recorded))
	}
	if s := (*recorded)[1]; s.Updated != 0 || s.Skipped != 1 {
		t.Errorf("second reload should skip every page: %+v", s)
	}
}

func TestWatchHandler_TemplateChangePagesMode(t *testing.T) {
	h, dir, recorded := setupWatchHandler(t, templating.ModePages)
	tmpl := filepath.Join(dir, "header-template.html")
	if err := os.WriteFile(tmpl, []byte("<header>new</header>"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	h.onChange(tmpl)

	if len(*recorded) != 0 {
		t.Errorf("pages mode should ignore the header template, recorded %d runs", len(*recorded))
	}
	for _, name := range []string{"Discord.html", "notes.html"} {
		if got := readPage(t, filepath.Join(dir, name)); got != watchPage {
			t.Errorf("%s was rewritten on a template change", name)
		}
	}
}

func TestWatchHandler_PageChange(t *testing.T) {
	h, dir, recorded := setupWatchHandler(t, templating.ModePages)

	h.onChange(filepath.Join(dir, "notes.html"))

	if len(*recorded) != 0 {
		t.Errorf("a single page change should not be recorded as a run")
	}
	if got := readPage(t, filepath.Join(dir, "notes.html")); !strings.Contains(got, "main-footer") {
		t.Error("changed page was not synced")
	}
	if got := readPage(t, filepath.Join(dir, "Discord.html")); got != watchPage {
		t.Error("an unchanged page was rewritten")
	}
}

func TestScopeFilter(t *testing.T) {
	tc := templating.DefaultConfig()

	glob := scopeFilter(pages.ScanGlobMode, tc)
	if !glob("notes.html") || glob("header-template.html") || glob("notes.txt") {
		t.Error("glob scope should accept pages minus the excluded names")
	}

	allow := scopeFilter(pages.ScanAllowListMode, tc)
	if !allow("Discord.html") || allow("notes.html") {
		t.Error("allowlist scope should accept listed pages only")
	}
}
