// Package archive builds the reproduction zip: a filtered walk of the
// working directory plus two synthetic metadata entries.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/docbundle/internal/exclude"
)

// Synthetic entry names, always present regardless of exclusion rules.
const (
	LockFileName     = "requirements.lock.txt"
	PlatformFileName = "platform.json"
)

// Entry summarizes one archive member for display.
type Entry struct {
	Path           string
	CompressedSize uint64
}

// Assembler drives the directory walk and writes the archive in memory.
type Assembler struct {
	workDir string
	engine  *exclude.Engine
	prefix  string
	logger  *slog.Logger
}

// New creates an assembler. Every entry is nested under prefix, the
// "{version}-{slug}" folder the maintainers unpack.
func New(workDir string, engine *exclude.Engine, prefix string, logger *slog.Logger) *Assembler {
	return &Assembler{workDir: workDir, engine: engine, prefix: prefix, logger: logger}
}

// Assemble walks the working directory top-down, pruning excluded
// subtrees before descending and skipping excluded files, then appends
// the synthetic metadata entries. It returns the raw zip bytes and a
// path-sorted summary of all entries.
func (a *Assembler) Assemble(lockFile, platform []byte) ([]byte, []Entry, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	err := filepath.WalkDir(a.workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != a.workDir && a.engine.IsExcluded(path) {
				// Prune: the whole subtree stays unvisited.
				return filepath.SkipDir
			}
			return nil
		}
		if a.engine.IsExcluded(path) {
			return nil
		}
		return a.addFile(zw, path)
	})
	if err != nil {
		zw.Close()
		return nil, nil, fmt.Errorf("walk %s: %w", a.workDir, err)
	}

	// Metadata entries bypass exclusion on purpose: a reproduction
	// without them is useless to maintainers.
	if err := a.addSynthetic(zw, LockFileName, lockFile); err != nil {
		zw.Close()
		return nil, nil, err
	}
	if err := a.addSynthetic(zw, PlatformFileName, platform); err != nil {
		zw.Close()
		return nil, nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("finalize archive: %w", err)
	}

	entries, err := summarize(buf.Bytes())
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), entries, nil
}

func (a *Assembler) addFile(zw *zip.Writer, path string) error {
	rel, err := filepath.Rel(a.workDir, path)
	if err != nil {
		return fmt.Errorf("relativize %s: %w", path, err)
	}
	name := a.prefix + "/" + filepath.ToSlash(rel)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	a.logger.Debug("added file", "entry", name)
	return nil
}

func (a *Assembler) addSynthetic(zw *zip.Writer, name string, content []byte) error {
	entry := a.prefix + "/" + name
	w, err := zw.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", entry, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write archive entry %s: %w", entry, err)
	}
	return nil
}

// summarize reads the finished archive back to obtain per-entry
// compressed sizes, which the zip writer does not expose while writing.
// The read-back doubles as an integrity check.
func summarize(raw []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("reopen archive: %w", err)
	}
	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, Entry{
			Path:           f.Name,
			CompressedSize: f.CompressedSize64,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
