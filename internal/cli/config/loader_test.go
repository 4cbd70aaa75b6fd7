package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/docbundle/internal/release"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.EnabledOnServe)
	assert.True(t, cfg.Archive)
	assert.True(t, cfg.ArchiveStopOnViolation)
	assert.Empty(t, cfg.RootDir)
	assert.Equal(t, release.LatestURL, cfg.ReleasesURL)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	content := "enabled: false\nroot_dir: ../project\noutput: json\n"
	require.NoError(t, os.WriteFile(ConfigFileName, []byte(content), 0o644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "../project", cfg.RootDir)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, ConfigFileName, GetConfigFileUsed())

	// Untouched keys keep their defaults.
	assert.True(t, cfg.Archive)
}

func TestLoadConfig_ExplicitFileWins(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("output: text\n"), 0o644))
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("output: markdown\n"), 0o644))

	cfg, err := LoadConfig(explicit, nil)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, explicit, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("root_dir: from-file\n"), 0o644))
	t.Setenv("DOCBUNDLE_ROOT_DIR", "from-env")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.RootDir)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	t.Setenv("DOCBUNDLE_ROOT_DIR", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root-dir", "", "")
	flags.Bool("archive", true, "")
	require.NoError(t, flags.Set("root-dir", "from-flag"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.RootDir)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("archive: false\n"), 0o644))

	// The flag carries a default of true but was never set; the file
	// value must survive.
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("archive", true, "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.False(t, cfg.Archive)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("enabled: [unclosed\n"), 0o644))

	_, err := LoadConfig("", nil)
	assert.Error(t, err)
}

func TestResetConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, GetCurrentConfig())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())
	assert.Empty(t, GetConfigFileUsed())
}

func TestFindSiteConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Empty(t, FindSiteConfig())

	require.NoError(t, os.WriteFile(SiteConfigNameAlt, []byte("site_name: x\n"), 0o644))
	assert.Equal(t, SiteConfigNameAlt, FindSiteConfig())

	// The .yml spelling takes priority when both exist.
	require.NoError(t, os.WriteFile(SiteConfigName, []byte("site_name: x\n"), 0o644))
	assert.Equal(t, SiteConfigName, FindSiteConfig())
}
