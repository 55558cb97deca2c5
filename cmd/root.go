package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/logging"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/settings"
	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

// envPrefix prefixes every environment variable read by the CLI, e.g.
// FLOWCONFIG_GITHUB_TOKEN for github.token.
const envPrefix = "FLOWCONFIG"

// Global flags shared across commands.
var (
	flagSettings   string
	flagPath       string
	flagFile       string
	flagOutput     string
	flagOwner      string
	flagRepo       string
	flagToken      string
	flagAppID      int64
	flagAppKeyPath string
	flagGitHubURL  string
	flagRegistry   string
	flagPlainHTTP  bool
	flagHTTPToken  string
	flagLogLevel   string
	flagLogFormat  string
)

// flagKeys maps settings keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"path":                "path",
	"file":                "file",
	"github.owner":        "owner",
	"github.repo":         "repo",
	"github.token":        "token",
	"github.app_id":       "github-app-id",
	"github.app_key_path": "github-app-key-path",
	"github.base_url":     "github-url",
	"glfs.registry":       "registry",
	"glfs.plain_http":     "plain-http",
	"http.token":          "http-token",
	"log.level":           "log-level",
	"log.format":          "log-format",
}

// Resolved by initConfig before any subcommand runs.
var (
	cfg    settings.Settings
	logger *slog.Logger
)

// rootCmd is the top-level command for flowconfig.
var rootCmd = &cobra.Command{
	Use:   "flowconfig",
	Short: "Inspect monorepo Gitflow configuration",
	Long: `flowconfig loads monorepo Gitflow configuration documents from local files,
git branches, HTTP endpoints and OCI registries, validates them, and reports
their content digest, canonical form and declared versions.

A document is named by a reference:

  config://                       the repository's own document
  file://path/to/config.yml       a file (a bare path works too)
  branch://develop                the document committed on a branch
  https://example.com/config.yml  an HTTP endpoint
  glfs://ghcr.io/acme/1.x/base    a fragment in an OCI registry

Settings are read from flags, then FLOWCONFIG_* environment variables, then a
settings file (--settings, ./.flowconfig.yaml or ~/.config/flowconfig/.flowconfig.yaml).`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagSettings, "settings", "", "path to a settings file")
	flags.StringVarP(&flagPath, "path", "p", ".", "repository root; relative file references resolve against it")
	flags.StringVar(&flagFile, "file", settings.DefaultFile, "repository-relative path of the configuration document")
	flags.StringVarP(&flagOutput, "output", "o", "", "output format: json, yaml, or empty for text")
	flags.StringVar(&flagOwner, "owner", "", "GitHub owner; with --repo, branch references are read through the API")
	flags.StringVar(&flagRepo, "repo", "", "GitHub repository name")
	flags.StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	flags.Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	flags.StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	flags.StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	flags.StringVar(&flagRegistry, "registry", "", "OCI registry for glfs references without a hostname")
	flags.BoolVar(&flagPlainHTTP, "plain-http", false, "talk to the OCI registry without TLS")
	flags.StringVar(&flagHTTPToken, "http-token", "", "bearer token sent with http and https references")
	flags.StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig resolves settings with precedence flags > environment >
// settings file > defaults, then builds the logger.
func initConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	settings.SetDefaults(v)

	for key, name := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flagSettings != "" {
		v.SetConfigFile(flagSettings)
	} else {
		v.SetConfigName(".flowconfig")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "flowconfig"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if flagSettings != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading settings: %w", err)
		}
	}

	s, err := settings.Load(v)
	if err != nil {
		return err
	}
	cfg = s
	logger = logging.New(cfg.Log)
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("settings file loaded", "path", used)
	}
	return nil
}

// sdkOptions maps the resolved settings onto SDK options.
func sdkOptions(s settings.Settings, l *slog.Logger) sdk.Options {
	return sdk.Options{
		Path:        s.Path,
		File:        s.File,
		Owner:       s.GitHub.Owner,
		Repo:        s.GitHub.Repo,
		Token:       s.GitHub.Token,
		AppID:       s.GitHub.AppID,
		AppKeyPath:  s.GitHub.AppKeyPath,
		BaseURL:     s.GitHub.BaseURL,
		Registry:    s.GLFS.Registry,
		PlainHTTP:   s.GLFS.PlainHTTP,
		HTTPToken:   s.HTTP.Token,
		HTTPTimeout: s.HTTP.Timeout,
		CacheTTL:    s.Cache.TTL,
		Logger:      l,
	}
}

// loadConfig loads the document named by the first argument, or the
// repository's own document when no argument is given.
func loadConfig(ctx context.Context, args []string) (*sdk.Config, error) {
	uri := "config://"
	if len(args) > 0 {
		uri = args[0]
	}
	client, err := sdk.New(ctx, sdkOptions(cfg, logger))
	if err != nil {
		return nil, err
	}
	return client.Load(ctx, uri)
}
