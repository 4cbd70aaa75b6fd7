// Package envinfo captures the environment metadata shipped inside every
// reproduction archive: the dependency manifest and a platform document.
package envinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// Dependency is one module the running binary was built against.
type Dependency struct {
	Path    string
	Version string
}

// Dependencies lists the build's module dependencies, sorted by path.
// The main module is included so the manifest pins the tool itself.
func Dependencies() []Dependency {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	deps := make([]Dependency, 0, len(info.Deps)+1)
	if info.Main.Path != "" {
		deps = append(deps, Dependency{Path: info.Main.Path, Version: info.Main.Version})
	}
	for _, d := range info.Deps {
		mod := d
		if mod.Replace != nil {
			mod = mod.Replace
		}
		deps = append(deps, Dependency{Path: mod.Path, Version: mod.Version})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Path < deps[j].Path })
	return deps
}

// LockFile renders dependencies as sorted "path==version" lines.
func LockFile(deps []Dependency) []byte {
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		lines = append(lines, d.Path+"=="+d.Version)
	}
	sort.Strings(lines)
	return []byte(strings.Join(lines, "\n"))
}

// Platform describes the runtime environment of the invoking process.
type Platform struct {
	System       string `json:"system"`
	Architecture string `json:"architecture"`
	Go           string `json:"go"`
	Compiler     string `json:"compiler"`
	NumCPU       int    `json:"num_cpu"`
	Command      string `json:"command"`
}

// Describe builds the platform document from the given command line,
// keeping only the executable's base name.
func Describe(args []string) Platform {
	command := ""
	if len(args) > 0 {
		parts := append([]string{filepath.Base(args[0])}, args[1:]...)
		command = strings.Join(parts, " ")
	}
	return Platform{
		System:       fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH),
		Architecture: runtime.GOARCH,
		Go:           runtime.Version(),
		Compiler:     runtime.Compiler,
		NumCPU:       runtime.NumCPU(),
		Command:      command,
	}
}

// JSON renders the platform document with two-space indentation.
func (p Platform) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// LibraryDirs returns directories holding installed library code that
// must never end up in an archive: the module cache and a vendor tree
// under the working directory. Only existing directories are returned.
func LibraryDirs(workDir string) []string {
	var dirs []string
	if cache := os.Getenv("GOMODCACHE"); cache != "" {
		dirs = append(dirs, cache)
	} else if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "pkg", "mod"))
	}
	dirs = append(dirs, filepath.Join(workDir, "vendor"))

	existing := dirs[:0]
	for _, dir := range dirs {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			existing = append(existing, dir)
		}
	}
	return existing
}
