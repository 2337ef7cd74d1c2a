package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hardwaylabs/conacct/pkg/cli"
)

func writeEnvFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper(), "", "")
	require.NoError(t, err)
	require.Empty(t, cfg.AccessToken)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadDefaultFileAbsentIsSilent(t *testing.T) {
	cfg, err := Load(NewViper(), filepath.Join(t.TempDir(), "conacct.env"), "")
	require.NoError(t, err)
	require.Empty(t, cfg.AccessToken)
}

func TestLoadDefaultFile(t *testing.T) {
	path := writeEnvFile(t, "conacct.env", "ACCESS_TOKEN=from-default\n")
	cfg, err := Load(NewViper(), path, "")
	require.NoError(t, err)
	require.Equal(t, "from-default", cfg.AccessToken)
}

func TestLoadExplicitFileOverridesDefault(t *testing.T) {
	def := writeEnvFile(t, "conacct.env", "ACCESS_TOKEN=from-default\n")
	explicit := writeEnvFile(t, "other.env", "ACCESS_TOKEN=from-explicit\nTIMEOUT=5s\n")

	cfg, err := Load(NewViper(), def, explicit)
	require.NoError(t, err)
	require.Equal(t, "from-explicit", cfg.AccessToken)
	require.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadExplicitFileMissingIsFatal(t *testing.T) {
	_, err := Load(NewViper(), "", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	require.Equal(t, cli.ExitError, cli.ExitCode(err))
	require.Contains(t, err.Error(), "missing.env")
}

func TestProcessEnvironmentOverridesFiles(t *testing.T) {
	t.Setenv("CONACCT_ACCESS_TOKEN", "from-process-env")
	path := writeEnvFile(t, "conacct.env", "ACCESS_TOKEN=from-file\n")

	cfg, err := Load(NewViper(), path, "")
	require.NoError(t, err)
	require.Equal(t, "from-process-env", cfg.AccessToken)
}
