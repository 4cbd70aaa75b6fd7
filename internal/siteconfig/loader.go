package siteconfig

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Load reads the config file at path and follows its INHERIT ancestry,
// returning fragments ordered from the most specific to the most distant
// ancestor. A config with no (or a non-existent) parent yields a chain of
// length one.
//
// YAML parse failures are deliberately swallowed: a malformed ancestor
// must not stop the diagnostic run, so it loads as an empty fragment.
// Only I/O failures surface as errors.
func Load(path string, logger *slog.Logger) (Chain, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}
	return load(abs, logger, map[string]bool{})
}

func load(abs string, logger *slog.Logger, seen map[string]bool) (Chain, error) {
	if seen[abs] {
		logger.Warn("inheritance cycle detected, stopping", "path", abs)
		return nil, nil
	}
	seen[abs] = true

	frag, err := parseFile(abs)
	if err != nil {
		return nil, err
	}

	chain := Chain{frag}
	if frag.Inherit == "" {
		return chain, nil
	}
	if _, err := os.Stat(frag.Inherit); err != nil {
		// The parent is recorded on the fragment so containment
		// validation can report it; the chain stops here.
		return chain, nil
	}

	logger.Debug("loading inherited configuration file", "path", frag.Inherit)
	parents, err := load(frag.Inherit, logger, seen)
	if err != nil {
		return nil, err
	}
	return append(chain, parents...), nil
}

// parseFile reads one YAML document into a fragment. The file is decoded
// as UTF-8 with an optional byte-order mark.
func parseFile(abs string) (Fragment, error) {
	raw, err := os.ReadFile(abs)
	if err != nil {
		return Fragment{}, fmt.Errorf("read config file: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil || data == nil {
		data = map[string]any{}
	}

	frag := Fragment{Path: abs, Data: data}
	if rel := frag.str(keyInherit); rel != "" {
		frag.Inherit = frag.resolve(rel)
	}
	return frag, nil
}
