// Package validate checks that every path a bundling run depends on is
// contained in the working directory.
package validate

import (
	"os"
	"sort"
	"strings"
)

// Violations is the set of offending paths found during a run.
// Set semantics: a path referenced by several candidate sources is
// reported once.
type Violations map[string]struct{}

// Add records one offending path.
func (v Violations) Add(path string) {
	v[path] = struct{}{}
}

// Empty reports whether no violation was found.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Sorted returns the violations in lexical order for stable output.
func (v Violations) Sorted() []string {
	paths := make([]string, 0, len(v))
	for p := range v {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Partition splits violations into paths that exist but lie outside the
// working directory, and paths that do not exist at all. Remediation
// output treats the two differently.
func (v Violations) Partition() (outside, missing []string) {
	for _, p := range v.Sorted() {
		if exists(p) {
			outside = append(outside, p)
		} else {
			missing = append(missing, p)
		}
	}
	return outside, missing
}

// Check validates every candidate path against workDir. A path is a
// violation when it is non-empty and either does not start with the
// workDir prefix or does not exist. Empty candidates are skipped: they
// mean the corresponding option is simply not configured.
//
// Containment is a plain string-prefix comparison, not a path-hierarchy
// one, so /a/bc counts as contained in /a/b. The site generator anchors
// its own file discovery the same way, and this check exists to mirror
// what the generator will see.
func Check(workDir string, candidates []string) Violations {
	violations := Violations{}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if !strings.HasPrefix(path, workDir) || !exists(path) {
			violations.Add(path)
		}
	}
	return violations
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
