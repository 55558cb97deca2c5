// Package settings holds the runtime options of the flowconfig CLI and SDK:
// where configuration documents are read from, how remote sources are
// reached, and how the process logs.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is the repository-relative location of a repository's own
// configuration document.
const DefaultFile = ".flowconfig/config.yml"

// Settings holds all configuration options for flowconfig.
type Settings struct {
	Path   string         `mapstructure:"path"` // repository root
	File   string         `mapstructure:"file"` // config document, relative to Path
	GitHub GitHubSettings `mapstructure:"github"`
	GLFS   GLFSSettings   `mapstructure:"glfs"`
	HTTP   HTTPSettings   `mapstructure:"http"`
	Cache  CacheSettings  `mapstructure:"cache"`
	Log    LogSettings    `mapstructure:"log"`
}

// GitHubSettings selects a remote repository. When Owner and Repo are set,
// branch references are read through the GitHub API instead of the local
// repository.
type GitHubSettings struct {
	Token      string `mapstructure:"token"`
	AppID      int64  `mapstructure:"app_id"`
	AppKeyPath string `mapstructure:"app_key_path"`
	BaseURL    string `mapstructure:"base_url"`
	Owner      string `mapstructure:"owner"`
	Repo       string `mapstructure:"repo"`
}

// Remote reports whether a remote repository is configured.
func (g GitHubSettings) Remote() bool {
	return g.Owner != "" && g.Repo != ""
}

// GLFSSettings configures the content-addressable fragment store.
type GLFSSettings struct {
	Registry  string `mapstructure:"registry"`   // used when a glfs reference has no hostname
	PlainHTTP bool   `mapstructure:"plain_http"` // talk to the registry without TLS
}

// HTTPSettings configures http and https references.
type HTTPSettings struct {
	Token   string        `mapstructure:"token"` // sent as a bearer token when set
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheSettings configures in-process caching of fetched documents.
// A zero TTL disables caching.
type CacheSettings struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		Path: ".",
		File: DefaultFile,
		HTTP: HTTPSettings{
			Timeout: 30 * time.Second,
		},
		Cache: CacheSettings{
			TTL: 5 * time.Minute,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SetDefaults registers every default with v so that environment variables
// and config files can override them key by key.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("path", d.Path)
	v.SetDefault("file", d.File)
	v.SetDefault("github.token", d.GitHub.Token)
	v.SetDefault("github.app_id", d.GitHub.AppID)
	v.SetDefault("github.app_key_path", d.GitHub.AppKeyPath)
	v.SetDefault("github.base_url", d.GitHub.BaseURL)
	v.SetDefault("github.owner", d.GitHub.Owner)
	v.SetDefault("github.repo", d.GitHub.Repo)
	v.SetDefault("glfs.registry", d.GLFS.Registry)
	v.SetDefault("glfs.plain_http", d.GLFS.PlainHTTP)
	v.SetDefault("http.token", d.HTTP.Token)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load unmarshals v into Settings and validates the result.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.File == "" {
		return fmt.Errorf("invalid settings: file must not be empty")
	}
	if s.HTTP.Timeout < 0 {
		return fmt.Errorf("invalid settings: http.timeout must not be negative, got %s", s.HTTP.Timeout)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("invalid settings: cache.ttl must not be negative, got %s", s.Cache.TTL)
	}
	switch strings.ToLower(s.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid settings: log.format must be text or json, got %q", s.Log.Format)
	}
	if (s.GitHub.Owner == "") != (s.GitHub.Repo == "") {
		return fmt.Errorf("invalid settings: github.owner and github.repo must be set together")
	}
	return nil
}
