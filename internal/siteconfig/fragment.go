// Package siteconfig loads LeapDocs configuration files and resolves
// their INHERIT ancestry chain.
package siteconfig

import "path/filepath"

// Configuration keys recognized by the bundler.
const (
	keyInherit            = "INHERIT"
	keyDocsDir            = "docs_dir"
	keySiteDir            = "site_dir"
	keyTheme              = "theme"
	keyHooks              = "hooks"
	keyPlugins            = "plugins"
	keyMarkdownExtensions = "markdown_extensions"
)

// Generator defaults, matching what LeapDocs assumes when a key is unset.
const (
	DefaultDocsDir = "docs"
	DefaultSiteDir = "site"
)

// Defaults for the projects plugin.
const (
	DefaultProjectsDir         = "projects"
	DefaultProjectsConfigGlob  = "*/leapdocs.yml"
	projectsPluginName         = "projects"
	projectsDirKey             = "projects_dir"
	projectsConfigFilesKey     = "projects_config_files"
)

// Fragment is one parsed configuration document. It is immutable once
// loaded; Inherit holds the resolved absolute path of the parent config
// when the fragment declares one.
type Fragment struct {
	// Path is the absolute path of the file this fragment was read from.
	Path string

	// Inherit is the parent config path declared via INHERIT, resolved
	// relative to the directory containing Path. Empty when the fragment
	// declares no parent.
	Inherit string

	// Data is the raw YAML mapping. Never nil; a file that parses to
	// nothing (or fails to parse) yields an empty mapping.
	Data map[string]any
}

// Get returns the raw value for key, or nil.
func (f Fragment) Get(key string) any {
	return f.Data[key]
}

// str returns the value for key as a string, or "".
func (f Fragment) str(key string) string {
	if v, ok := f.Data[key].(string); ok {
		return v
	}
	return ""
}

// resolve makes path absolute relative to the fragment's own directory.
func (f Fragment) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(filepath.Dir(f.Path), path))
}

// Chain is an ordered fragment sequence, from the most specific fragment
// to the most distant ancestor.
type Chain []Fragment

// lookup returns the first value set for key across the chain, honoring
// child-overrides-ancestor precedence.
func (c Chain) lookup(key string) (any, Fragment) {
	for _, f := range c {
		if v, ok := f.Data[key]; ok {
			return v, f
		}
	}
	return nil, Fragment{}
}

// DocsDir returns the absolute documentation source directory.
func (c Chain) DocsDir() string {
	v, f := c.lookup(keyDocsDir)
	if s, ok := v.(string); ok && s != "" {
		return f.resolve(s)
	}
	if len(c) > 0 {
		return c[0].resolve(DefaultDocsDir)
	}
	return ""
}

// SiteDir returns the absolute generated-output directory, or "" when no
// fragment configures one. The generator default is intentionally not
// applied here: an unset site_dir means there is nothing to validate.
func (c Chain) SiteDir() string {
	v, f := c.lookup(keySiteDir)
	if s, ok := v.(string); ok && s != "" {
		return f.resolve(s)
	}
	return ""
}

// EffectiveSiteDir is like SiteDir but falls back to the generator
// default below the root fragment, for exclusion-pattern synthesis.
func (c Chain) EffectiveSiteDir() string {
	if dir := c.SiteDir(); dir != "" {
		return dir
	}
	if len(c) > 0 {
		return c[0].resolve(DefaultSiteDir)
	}
	return ""
}

// ThemeCustomDir returns the theme override directory, or "".
func (c Chain) ThemeCustomDir() string {
	v, f := c.lookup(keyTheme)
	theme, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := theme["custom_dir"].(string); ok && s != "" {
		return f.resolve(s)
	}
	return ""
}

// Hooks returns the configured hook scripts.
func (c Chain) Hooks() []string {
	v, _ := c.lookup(keyHooks)
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var hooks []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			hooks = append(hooks, s)
		}
	}
	return hooks
}

// Projects describes the projects plugin configuration, when active.
type Projects struct {
	// Dir is the absolute directory holding sub-projects.
	Dir string
	// ConfigGlob matches sub-project config files relative to Dir.
	ConfigGlob string
}

// Projects returns the sub-project settings, or nil when the projects
// plugin is not configured. Plugins are declared as a list of either
// plain names or single-key mappings carrying the plugin options.
func (c Chain) Projects() *Projects {
	v, f := c.lookup(keyPlugins)
	plugins, ok := v.([]any)
	if !ok {
		return nil
	}
	for _, entry := range plugins {
		switch p := entry.(type) {
		case string:
			if p == projectsPluginName {
				return &Projects{
					Dir:        f.resolve(DefaultProjectsDir),
					ConfigGlob: DefaultProjectsConfigGlob,
				}
			}
		case map[string]any:
			opts, ok := p[projectsPluginName]
			if !ok {
				continue
			}
			proj := &Projects{
				Dir:        f.resolve(DefaultProjectsDir),
				ConfigGlob: DefaultProjectsConfigGlob,
			}
			if m, ok := opts.(map[string]any); ok {
				if s, ok := m[projectsDirKey].(string); ok && s != "" {
					proj.Dir = f.resolve(s)
				}
				if s, ok := m[projectsConfigFilesKey].(string); ok && s != "" {
					proj.ConfigGlob = s
				}
			}
			return proj
		}
	}
	return nil
}

// ExtensionPath is one filesystem path referenced by a markdown
// extension's configuration.
type ExtensionPath struct {
	Extension string
	Option    string
	Path      string
}

// Path options of markdown extensions that reference the filesystem.
var knownPathOptions = []string{"base_path", "auto_append", "relative_path"}

// ExtensionPaths collects every filesystem path referenced by markdown
// extension configs across the chain. Option values may be a single
// string or a list of strings; relative paths resolve against the
// declaring fragment's directory.
func (c Chain) ExtensionPaths() []ExtensionPath {
	var paths []ExtensionPath
	v, f := c.lookup(keyMarkdownExtensions)
	exts, ok := v.([]any)
	if !ok {
		return nil
	}
	for _, entry := range exts {
		cfg, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for name, raw := range cfg {
			opts, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			for _, option := range knownPathOptions {
				value, ok := opts[option]
				if !ok {
					continue
				}
				var values []any
				if list, ok := value.([]any); ok {
					values = list
				} else {
					values = []any{value}
				}
				for _, item := range values {
					if s, ok := item.(string); ok && s != "" {
						paths = append(paths, ExtensionPath{
							Extension: name,
							Option:    option,
							Path:      f.resolve(s),
						})
					}
				}
			}
		}
	}
	return paths
}

// InheritPaths returns the resolved parent path of every fragment that
// declares one, in chain order.
func (c Chain) InheritPaths() []string {
	var paths []string
	for _, f := range c {
		if f.Inherit != "" {
			paths = append(paths, f.Inherit)
		}
	}
	return paths
}
