package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const platformDoc = `identifier: platform
apiVersion: v0.3
developVersion: 1.3.0
masterVersion: 1.2.0
releases:
  - name: "1.3"
    branchName: release/1.3
    version: 1.3.0
supports:
  - name: 1.x
    masterBranchName: support/1.x/master
    developBranchName: support/1.x/develop
    masterVersion: 1.1.4
submodules:
  - name: api
    path: services/api
    config:
      identifier: api
      developVersion: 0.2.0
`

// execute runs the root command with args and returns everything written to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, name := range []string{
		"settings", "path", "file", "output", "owner", "repo", "token",
		"github-app-id", "github-app-key-path", "github-url",
		"registry", "plain-http", "http-token", "log-level", "log-format",
	} {
		require.NotNil(t, flags.Lookup(name), name)
	}
}

func TestRootCmd_FlagKeysResolve(t *testing.T) {
	for key, name := range flagKeys {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag for %s", key)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{
		"version", "hash", "canonical", "resolve-version", "api-version",
		"ref", "lookup", "tree", "validate", "branches",
	} {
		require.True(t, names[want], "%s subcommand should be registered", want)
	}
}

func TestInitConfig_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "configs/main.yml", platformDoc)
	settingsFile := writeDoc(t, t.TempDir(), "settings.yaml", "path: "+dir+"\nfile: configs/main.yml\nlog:\n  level: debug\n")

	out, err := execute(t, "resolve-version", "--settings", settingsFile)
	require.NoError(t, err)
	require.Contains(t, out, "1.3.0\n")
	require.Equal(t, dir, cfg.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestInitConfig_EnvOverridesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.yml", "identifier: from-a\n")
	writeDoc(t, dir, "b.yml", "identifier: from-b\n")
	settingsFile := writeDoc(t, t.TempDir(), "settings.yaml", "path: "+dir+"\nfile: a.yml\n")
	t.Setenv("FLOWCONFIG_FILE", "b.yml")

	out, err := execute(t, "tree", "--settings", settingsFile)
	require.NoError(t, err)
	require.Equal(t, "from-b\n", out)

	out, err = execute(t, "tree", "--settings", settingsFile, "--file", "a.yml")
	require.NoError(t, err)
	require.Equal(t, "from-a\n", out)
}

func TestInitConfig_MissingSettingsFile(t *testing.T) {
	_, err := execute(t, "tree", "--settings", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading settings")
}

func TestInitConfig_InvalidSettings(t *testing.T) {
	_, err := execute(t, "tree", "--log-format", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log.format must be text or json")

	_, err = execute(t, "tree", "--owner", "myorg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be set together")
}
