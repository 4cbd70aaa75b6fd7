// Package config provides configuration management for the docbundle
// CLI. Options come from the config file, environment variables, and
// flags, with flags taking the highest precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Enabled turns the whole mechanism on or off.
	Enabled bool `koanf:"enabled"`

	// EnabledOnServe runs the bundler during interactive preview mode.
	// Off by default: authors rarely want a bundle while serving.
	EnabledOnServe bool `koanf:"enabled_on_serve"`

	// Archive controls whether a zip is produced; when false the run
	// only validates.
	Archive bool `koanf:"archive"`

	// ArchiveStopOnViolation aborts on validation failures instead of
	// warning and continuing.
	ArchiveStopOnViolation bool `koanf:"archive_stop_on_violation"`

	// RootDir overrides the assumed project root with a path relative
	// to the generator config file's directory.
	RootDir string `koanf:"root_dir"`

	// ReleasesURL is the endpoint for the version-freshness check.
	ReleasesURL string `koanf:"releases_url"`

	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
}

// Tool config file names, looked up in the working directory.
const (
	ConfigFileName    = "docbundle.yaml"
	ConfigFileNameAlt = "docbundle.yml"
)

// Generator config file names, looked up when no path is given.
const (
	SiteConfigName    = "leapdocs.yml"
	SiteConfigNameAlt = "leapdocs.yaml"
)

// DefaultOutput auto-detects: TTY gets text, pipes get markdown.
const DefaultOutput = "auto"
