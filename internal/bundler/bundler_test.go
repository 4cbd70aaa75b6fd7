package bundler

import (
	"archive/zip"
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/docbundle/internal/cli/output"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newProject lays out a minimal site project and returns its root.
func newProject(t *testing.T, config string) (workDir, configPath string) {
	t.Helper()
	workDir = t.TempDir()

	configPath = filepath.Join(workDir, "leapdocs.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "docs", "index.md"), []byte("# Home\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "site"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "site", "index.html"), []byte("<html>\n"), 0o644))
	return workDir, configPath
}

func defaultOptions(workDir, configPath string) Options {
	return Options{
		ConfigFile:      configPath,
		WorkDir:         workDir,
		Enabled:         true,
		Archive:         true,
		StopOnViolation: true,
		Version:         "0.1.0",
		Label:           "broken nav",
	}
}

func run(t *testing.T, opts Options) (Outcome, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	renderer := output.NewRenderer(buf, buf, output.ModeMarkdown)
	b := New(opts, testLogger(), renderer)
	outcome, err := b.Run(context.Background())
	require.NoError(t, err)
	return outcome, buf.String()
}

func readArchive(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRun_Disabled(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.Enabled = false

	outcome, _ := run(t, opts)
	assert.Equal(t, OutcomeSkipped, outcome)
}

func TestRun_ServeGated(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\n")

	opts := defaultOptions(workDir, configPath)
	opts.Serve = true
	outcome, _ := run(t, opts)
	assert.Equal(t, OutcomeSkipped, outcome)

	opts.EnabledOnServe = true
	outcome, _ = run(t, opts)
	assert.Equal(t, OutcomeBundled, outcome)
}

func TestRun_BundlesProject(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\nsite_dir: site\n")

	outcome, out := run(t, defaultOptions(workDir, configPath))
	assert.Equal(t, OutcomeBundled, outcome)

	archivePath := filepath.Join(workDir, "0.1.0-broken-nav.zip")
	names := readArchive(t, archivePath)

	assert.Contains(t, names, "0.1.0-broken-nav/leapdocs.yml")
	assert.Contains(t, names, "0.1.0-broken-nav/docs/index.md")
	assert.Contains(t, names, "0.1.0-broken-nav/requirements.lock.txt")
	assert.Contains(t, names, "0.1.0-broken-nav/platform.json")
	for _, name := range names {
		assert.NotContains(t, name, "site/", "generated output leaked into archive: %s", name)
	}

	assert.Contains(t, out, archivePath)
}

func TestRun_ValidateOnly(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.Archive = false

	outcome, _ := run(t, opts)
	assert.Equal(t, OutcomeChecked, outcome)
	assert.NoFileExists(t, filepath.Join(workDir, "0.1.0-broken-nav.zip"))
}

func TestRun_PathViolationAborts(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outside, "docs"), 0o755))

	workDir, configPath := newProject(t, "docs_dir: "+filepath.Join(outside, "docs")+"\n")

	outcome, out := run(t, defaultOptions(workDir, configPath))
	assert.Equal(t, OutcomeAborted, outcome)

	badPath := filepath.Join(outside, "docs")
	assert.Equal(t, 1, strings.Count(out, badPath), "violation must be reported exactly once")
	assert.NoFileExists(t, filepath.Join(workDir, "0.1.0-broken-nav.zip"))
}

func TestRun_ViolationSuppressed(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outside, "docs"), 0o755))

	workDir, configPath := newProject(t, "docs_dir: "+filepath.Join(outside, "docs")+"\n")
	opts := defaultOptions(workDir, configPath)
	opts.StopOnViolation = false

	outcome, out := run(t, opts)
	assert.Equal(t, OutcomeBundled, outcome)
	assert.Contains(t, out, filepath.Join(outside, "docs"))
	assert.FileExists(t, filepath.Join(workDir, "0.1.0-broken-nav.zip"))
}

func TestRun_MissingInheritedParentIsViolation(t *testing.T) {
	workDir, configPath := newProject(t, "INHERIT: missing.yml\n")

	outcome, out := run(t, defaultOptions(workDir, configPath))
	assert.Equal(t, OutcomeAborted, outcome)
	assert.Contains(t, out, filepath.Join(workDir, "missing.yml"))
}

func TestRun_CustomizationsAbort(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"theme override", "theme:\n  name: leap\n  custom_dir: overrides\n"},
		{"hooks", "hooks:\n  - hooks/patch.py\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, configPath := newProject(t, tt.config)

			outcome, out := run(t, defaultOptions(workDir, configPath))
			assert.Equal(t, OutcomeAborted, outcome)
			assert.Contains(t, out, "remove all customizations")
		})
	}
}

func TestRun_BadExtensionPathsAbort(t *testing.T) {
	workDir, configPath := newProject(t, `
markdown_extensions:
  - snippets:
      base_path: ../elsewhere
`)

	outcome, out := run(t, defaultOptions(workDir, configPath))
	assert.Equal(t, OutcomeAborted, outcome)
	assert.Contains(t, out, "snippets:base_path")
}

func TestRun_MissingRootDirIsHardError(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.RootDir = "no-such-dir"
	opts.StopOnViolation = false

	buf := &bytes.Buffer{}
	b := New(opts, testLogger(), output.NewRenderer(buf, buf, output.ModeMarkdown))
	outcome, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeAborted, outcome)
	assert.Contains(t, err.Error(), "root_dir")
}

func TestRun_StaleVersionAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/releases/tag/9.9.9")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.ReleasesURL = srv.URL

	outcome, out := run(t, opts)
	assert.Equal(t, OutcomeAborted, outcome)
	assert.Contains(t, out, "update from 0.1.0 to 9.9.9")
}

func TestRun_CurrentVersionProceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/releases/tag/0.1.0")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.ReleasesURL = srv.URL

	outcome, _ := run(t, opts)
	assert.Equal(t, OutcomeBundled, outcome)
}

func TestRun_UnreachableReleaseEndpointProceeds(t *testing.T) {
	workDir, configPath := newProject(t, "site_name: Example\n")
	opts := defaultOptions(workDir, configPath)
	opts.ReleasesURL = "http://127.0.0.1:1/releases/latest"

	outcome, _ := run(t, opts)
	assert.Equal(t, OutcomeBundled, outcome)
}

func TestRun_SubProjects(t *testing.T) {
	workDir, configPath := newProject(t, `
plugins:
  - projects:
      projects_dir: projects
`)

	// One sub-project with its own generated output.
	sub := filepath.Join(workDir, "projects", "blog")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "leapdocs.yml"), []byte("site_dir: out\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "docs", "post.md"), []byte("# Post\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "out"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "out", "post.html"), []byte("<html>\n"), 0o644))

	outcome, _ := run(t, defaultOptions(workDir, configPath))
	assert.Equal(t, OutcomeBundled, outcome)

	names := readArchive(t, filepath.Join(workDir, "0.1.0-broken-nav.zip"))
	assert.Contains(t, names, "0.1.0-broken-nav/projects/blog/leapdocs.yml")
	assert.Contains(t, names, "0.1.0-broken-nav/projects/blog/docs/post.md")
	for _, name := range names {
		assert.NotContains(t, name, "blog/out/", "sub-project output leaked: %s", name)
	}
}
