// Package bundler drives the validate-then-bundle pipeline: containment
// validation, version freshness, customization checks, and finally the
// archive walk. Stages run in a fixed order and each can stop the run.
package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/docbundle/internal/cli/output"
	"github.com/leapstack-labs/docbundle/internal/prompt"
	"github.com/leapstack-labs/docbundle/internal/release"
	"github.com/leapstack-labs/docbundle/internal/siteconfig"
)

// Outcome reports how a run ended.
type Outcome int

const (
	// OutcomeSkipped means the bundler was disabled (or serve-gated)
	// and the host pipeline should proceed normally.
	OutcomeSkipped Outcome = iota
	// OutcomeChecked means all validations passed with archiving
	// disabled.
	OutcomeChecked
	// OutcomeBundled means an archive was written. The host pipeline
	// must not continue to a full site build afterwards.
	OutcomeBundled
	// OutcomeAborted means a violation stopped the run.
	OutcomeAborted
)

// Options configures one bundling run.
type Options struct {
	// ConfigFile is the generator's root configuration file.
	ConfigFile string

	// WorkDir anchors all containment checks. Defaults to the process
	// working directory.
	WorkDir string

	// Serve marks an invocation from interactive preview mode.
	Serve bool

	// Enabled turns the whole mechanism on or off.
	Enabled bool
	// EnabledOnServe allows runs during interactive preview.
	EnabledOnServe bool
	// Archive controls whether a zip is produced or the run only
	// validates.
	Archive bool
	// StopOnViolation aborts on validation failures; when false they
	// are reported and the run continues.
	StopOnViolation bool

	// RootDir overrides the assumed project root, relative to the
	// config file's directory. The working directory is changed before
	// any validation.
	RootDir string

	// Version is the installed tool version.
	Version string
	// ReleasesURL is the endpoint for the freshness check; empty
	// disables the check.
	ReleasesURL string

	// Label presets the archive label, skipping the interactive prompt.
	Label string
}

// Bundler runs the pipeline with injected collaborators; there is no
// process-wide state.
type Bundler struct {
	opts     Options
	logger   *slog.Logger
	renderer *output.Renderer
	releases *release.Client
	ask      func(question string) (string, error)
}

// New creates a bundler.
func New(opts Options, logger *slog.Logger, renderer *output.Renderer) *Bundler {
	return &Bundler{
		opts:     opts,
		logger:   logger,
		renderer: renderer,
		releases: release.NewClient(),
		ask:      prompt.Ask,
	}
}

// Run executes the pipeline stages in order. The returned error is
// reserved for unexpected I/O failures; anticipated conditions (bad
// paths, stale version, customizations) are rendered with remediation
// text and reflected in the outcome.
func (b *Bundler) Run(ctx context.Context) (Outcome, error) {
	if !b.opts.Enabled {
		return OutcomeSkipped, nil
	}
	if b.opts.Serve && !b.opts.EnabledOnServe {
		return OutcomeSkipped, nil
	}

	workDir, configPath, ok, err := b.stageWorkDir()
	if err != nil {
		return OutcomeAborted, err
	}
	if !ok {
		return OutcomeAborted, nil
	}

	chain, subChains, err := b.stageLoadChain(configPath)
	if err != nil {
		return OutcomeAborted, err
	}

	if !b.stageValidate(workDir, configPath, chain, subChains) {
		return OutcomeAborted, nil
	}

	if !b.stageVersionCheck(ctx) {
		return OutcomeAborted, nil
	}

	if !b.opts.Archive {
		return OutcomeChecked, nil
	}

	b.logger.Info("started archive creation for bug report")

	if !b.stageCustomizations(chain) {
		return OutcomeAborted, nil
	}

	name, err := b.stageName()
	if err != nil {
		return OutcomeAborted, err
	}

	engine := b.stagePatterns(workDir, chain, subChains)

	if err := b.stageAssemble(workDir, engine, name); err != nil {
		return OutcomeAborted, err
	}
	return OutcomeBundled, nil
}

// stageWorkDir resolves the working directory and the absolute config
// path. With root_dir set, the working directory is changed before any
// further work; without it, the config file's directory must already be
// under the working directory.
func (b *Bundler) stageWorkDir() (workDir, configPath string, ok bool, err error) {
	workDir = b.opts.WorkDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return "", "", false, fmt.Errorf("determine working directory: %w", err)
		}
	}

	configPath, err = filepath.Abs(b.opts.ConfigFile)
	if err != nil {
		return "", "", false, fmt.Errorf("resolve config path: %w", err)
	}
	configDir := filepath.Dir(configPath)

	if b.opts.RootDir != "" {
		target := b.opts.RootDir
		if !filepath.IsAbs(target) {
			target = filepath.Clean(filepath.Join(configDir, target))
		}
		if _, statErr := os.Stat(target); statErr != nil {
			// A bad root_dir is a hard error even with suppression
			// enabled: nothing downstream makes sense without a root.
			return "", "", false, fmt.Errorf("root_dir %q doesn't exist", b.opts.RootDir)
		}
		if err := os.Chdir(target); err != nil {
			return "", "", false, fmt.Errorf("change to root_dir %q: %w", b.opts.RootDir, err)
		}
		return target, configPath, true, nil
	}

	if !hasPrefix(configDir, workDir) {
		b.logger.Error("please run the build from the actual project root")
		b.helpOnBadCwd(workDir, configDir)
		if b.opts.StopOnViolation {
			return "", "", false, nil
		}
	}
	return workDir, configPath, true, nil
}

// stageLoadChain loads the root fragment chain and, when the projects
// plugin is active, the chain of every sub-project config.
func (b *Bundler) stageLoadChain(configPath string) (siteconfig.Chain, []siteconfig.Chain, error) {
	chain, err := siteconfig.Load(configPath, b.logger)
	if err != nil {
		return nil, nil, err
	}

	subChains, err := b.loadSubProjects(chain)
	if err != nil {
		return nil, nil, err
	}
	return chain, subChains, nil
}

func hasPrefix(path, prefix string) bool {
	// Plain string comparison, same looseness as the containment
	// validator.
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}
