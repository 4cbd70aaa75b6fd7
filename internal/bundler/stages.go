package bundler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/docbundle/internal/archive"
	"github.com/leapstack-labs/docbundle/internal/envinfo"
	"github.com/leapstack-labs/docbundle/internal/exclude"
	"github.com/leapstack-labs/docbundle/internal/prompt"
	"github.com/leapstack-labs/docbundle/internal/release"
	"github.com/leapstack-labs/docbundle/internal/siteconfig"
	"github.com/leapstack-labs/docbundle/internal/validate"
)

// oversizeBytes is the recommended maximum archive size.
const oversizeBytes = 1_000_000

// loadSubProjects resolves the projects-plugin config glob and loads
// each sub-project's fragment chain.
func (b *Bundler) loadSubProjects(chain siteconfig.Chain) ([]siteconfig.Chain, error) {
	proj := chain.Projects()
	if proj == nil {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(proj.Dir), proj.ConfigGlob)
	if err != nil {
		if err == fs.ErrNotExist {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve sub-project configs %q: %w", proj.ConfigGlob, err)
	}

	var chains []siteconfig.Chain
	for _, match := range matches {
		sub, err := siteconfig.Load(filepath.Join(proj.Dir, match), b.logger)
		if err != nil {
			return nil, err
		}
		chains = append(chains, sub)
	}
	return chains, nil
}

// stageValidate checks every path the run depends on for containment in
// the working directory, then does the same for paths referenced by
// markdown-extension configs. All violations are collected before
// anything is reported.
func (b *Bundler) stageValidate(workDir, configPath string, chain siteconfig.Chain, subChains []siteconfig.Chain) bool {
	candidates := []string{
		configPath,
		chain.DocsDir(),
		chain.SiteDir(),
	}
	candidates = append(candidates, chain.InheritPaths()...)
	if proj := chain.Projects(); proj != nil {
		candidates = append(candidates, proj.Dir)
	}
	for _, sub := range subChains {
		for _, f := range sub {
			candidates = append(candidates, f.Path)
		}
		candidates = append(candidates, sub.InheritPaths()...)
	}

	violations := validate.Check(workDir, candidates)
	if !violations.Empty() {
		b.logger.Error("one or more paths aren't children of root")
		b.helpOnBadPaths(workDir, violations)
		if b.opts.StopOnViolation {
			return false
		}
	}

	var badExts []siteconfig.ExtensionPath
	for _, ext := range chain.ExtensionPaths() {
		if !validate.Check(workDir, []string{ext.Path}).Empty() {
			badExts = append(badExts, ext)
		}
	}
	if len(badExts) > 0 {
		b.logger.Error("one or more markdown_extensions paths are invalid")
		b.helpOnBadExtensions(workDir, badExts)
		if b.opts.StopOnViolation {
			return false
		}
	}
	return true
}

// stageVersionCheck compares the installed version with the latest
// published release. An unreachable release endpoint only logs a
// warning: offline runs must still produce bundles.
func (b *Bundler) stageVersionCheck(ctx context.Context) bool {
	if b.opts.ReleasesURL == "" || b.opts.Version == "" {
		return true
	}

	latest, err := b.releases.Latest(ctx, b.opts.ReleasesURL)
	if err != nil {
		b.logger.Warn("could not resolve latest release", "error", err)
		return true
	}
	if !release.IsCurrent(b.opts.Version, latest) {
		b.logger.Error("please upgrade to the latest version")
		b.helpOnVersions(b.opts.Version, latest)
		if b.opts.StopOnViolation {
			return false
		}
	}
	return true
}

// stageCustomizations rejects theme overrides and hooks: both change the
// generator's behavior in ways that make a reproduction unreliable.
func (b *Bundler) stageCustomizations(chain siteconfig.Chain) bool {
	if chain.ThemeCustomDir() != "" {
		b.logger.Error("please remove the 'theme.custom_dir' setting")
		b.helpOnCustomizations()
		if b.opts.StopOnViolation {
			return false
		}
	}
	if len(chain.Hooks()) > 0 {
		b.logger.Error("please remove the 'hooks' setting")
		b.helpOnCustomizations()
		if b.opts.StopOnViolation {
			return false
		}
	}
	return true
}

// stageName determines the archive name: the tool version joined with
// the slugified author-supplied label.
func (b *Bundler) stageName() (string, error) {
	label := b.opts.Label
	if label == "" {
		var err error
		label, err = b.ask("\nPlease name your bug report (2-4 words): ")
		if err != nil {
			return "", fmt.Errorf("read bug report label: %w", err)
		}
	}
	slug := prompt.Slugify(prompt.StripExtension(label))
	if slug == "" {
		slug = prompt.DefaultLabel
	}
	return b.opts.Version + "-" + slug, nil
}

// stagePatterns builds the exclusion engine: the bundled rule set plus
// patterns synthesized for the site directory, library directories, and
// each sub-project's site directory, each only when it lies under the
// working directory.
func (b *Bundler) stagePatterns(workDir string, chain siteconfig.Chain, subChains []siteconfig.Chain) *exclude.Engine {
	engine := exclude.NewEngine(workDir, exclude.DefaultPatterns(), b.logger)

	engine.AppendDir(chain.EffectiveSiteDir())
	for _, dir := range envinfo.LibraryDirs(workDir) {
		engine.AppendDir(dir)
	}
	for _, sub := range subChains {
		engine.AppendDir(sub.EffectiveSiteDir())
	}
	return engine
}

// stageAssemble walks the project, writes the archive to disk, and
// prints the entry summary.
func (b *Bundler) stageAssemble(workDir string, engine *exclude.Engine, name string) error {
	asm := archive.New(workDir, engine, name, b.logger)

	lock := envinfo.LockFile(envinfo.Dependencies())
	platform, err := envinfo.Describe(os.Args).JSON()
	if err != nil {
		return fmt.Errorf("render platform document: %w", err)
	}

	raw, entries, err := asm.Assemble(lock, platform)
	if err != nil {
		return err
	}

	outPath := filepath.Join(workDir, name+".zip")
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("write archive %s: %w", outPath, err)
	}

	b.logger.Info("archive successfully created", "path", outPath)
	b.renderSummary(outPath, raw, entries)
	return nil
}

func (b *Bundler) renderSummary(outPath string, raw []byte, entries []archive.Entry) {
	styles := b.renderer.Styles()

	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []any{
			styles.Muted.Render(entry.Path),
			styles.FormatSize(entry.CompressedSize, 1),
		})
	}
	b.renderer.Table([]any{"Entry", "Size"}, rows)

	b.renderer.Println("")
	b.renderer.Printf("  %s %s\n",
		styles.Bold.Render(outPath),
		styles.FormatSize(uint64(len(raw)), 10))

	if len(raw) > oversizeBytes {
		b.logger.Warn("archive exceeds recommended maximum size of 1 MB")
	}
}
