// Package exclude decides, path by path, whether a discovered file
// belongs in the reproduction archive. Rules are gitignore-style glob
// patterns in POSIX path syntax, matched against working-directory
// relative paths.
package exclude

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

//go:embed bundle.gitignore
var bundledRules string

// LoadPatterns reads newline-separated glob patterns, skipping blank
// lines and # comments.
func LoadPatterns(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	var patterns []string
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan patterns: %w", err)
	}
	return patterns, nil
}

// DefaultPatterns returns the static rule set bundled with the tool.
func DefaultPatterns() []string {
	patterns, err := LoadPatterns(strings.NewReader(bundledRules))
	if err != nil {
		// The bundled rule file is compiled in; scanning a string
		// cannot fail.
		panic(err)
	}
	return patterns
}

// Engine evaluates candidate paths against an ordered pattern list.
// The list is built once per run and only read during the walk.
type Engine struct {
	workDir  string
	patterns []string
	logger   *slog.Logger
}

// NewEngine creates an engine anchored at workDir.
func NewEngine(workDir string, patterns []string, logger *slog.Logger) *Engine {
	return &Engine{workDir: workDir, patterns: patterns, logger: logger}
}

// Patterns returns the current pattern list.
func (e *Engine) Patterns() []string {
	return e.patterns
}

// Append adds patterns synthesized at runtime, e.g. for the generated
// site directory.
func (e *Engine) Append(patterns ...string) {
	e.patterns = append(e.patterns, patterns...)
}

// AppendDir synthesizes a directory-scoped pattern for abspath, but only
// when the directory lies under the working directory. Reports whether a
// pattern was added.
func (e *Engine) AppendDir(abspath string) bool {
	if abspath == "" || !strings.HasPrefix(abspath, e.workDir) {
		return false
	}
	e.Append(e.Normalize(abspath))
	return true
}

// Normalize converts an absolute path into the canonical form patterns
// are matched against: the working-directory prefix is stripped once,
// separators become forward slashes, and anything that is not an
// existing regular file gets a trailing slash. Paths that do not exist
// are conservatively treated as directories so that directory patterns
// still match them. The working directory itself normalizes to "/".
func (e *Engine) Normalize(abspath string) string {
	path := strings.Replace(abspath, e.workDir, "", 1)
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	if path == "" {
		return "/"
	}
	if fi, err := os.Stat(abspath); err != nil || !fi.Mode().IsRegular() {
		return path + "/"
	}
	return path
}

// Match tests an already-normalized path against every pattern,
// short-circuiting on the first hit. Matching is case-sensitive POSIX
// glob (*, ?, [...]), with ** spanning path separators.
func (e *Engine) Match(normalized string) bool {
	for _, pattern := range e.patterns {
		ok, err := doublestar.Match(pattern, normalized)
		if err != nil {
			e.logger.Warn("skipping malformed exclusion pattern", "pattern", pattern)
			continue
		}
		if ok {
			e.logger.Debug("excluded", "pattern", pattern, "path", normalized)
			return true
		}
	}
	return false
}

// IsExcluded reports whether the file or directory at abspath must be
// omitted from the archive.
func (e *Engine) IsExcluded(abspath string) bool {
	return e.Match(e.Normalize(abspath))
}
