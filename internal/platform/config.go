package platform

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/edubrinca/pkg/adapters/gemini"
)

// Config is the on-disk configuration file.
//
//	store:
//	  adapter: sqlite
//	  path: ~/escola
//	remote:
//	  model: gemini-2.5-flash
//	  timeout: 30s
//	  grounding: false
//	offline: false
type Config struct {
	Store   StoreConfig  `yaml:"store"`
	Remote  RemoteConfig `yaml:"remote"`
	Offline bool         `yaml:"offline"`
}

// StoreConfig selects and locates the local store.
type StoreConfig struct {
	Adapter  string `yaml:"adapter"`
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`
	ReadOnly bool   `yaml:"read_only"`
}

// RemoteConfig configures the Gemini backend.
type RemoteConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	Grounding *bool         `yaml:"grounding"`
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file into functional options. Zero values are skipped
// so later options (e.g. CLI flags) can still override them.
// A key found in the environment takes precedence over the file's api_key.
func (c Config) Options() []Option {
	var opts []Option
	if c.Store.Adapter != "" {
		opts = append(opts, WithAdapter(c.Store.Adapter))
	}
	if c.Store.Path != "" {
		opts = append(opts, WithPath(expandHome(c.Store.Path)))
	}
	if c.Store.Format != "" {
		opts = append(opts, WithFormat(c.Store.Format))
	}
	if c.Store.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.Remote.APIKey != "" && gemini.KeyFromEnv() == "" {
		opts = append(opts, WithAPIKey(c.Remote.APIKey))
	}
	if c.Remote.Model != "" {
		opts = append(opts, WithModel(c.Remote.Model))
	}
	if c.Remote.Timeout > 0 {
		opts = append(opts, WithRemoteTimeout(c.Remote.Timeout))
	}
	if c.Remote.Grounding != nil {
		opts = append(opts, WithGrounding(*c.Remote.Grounding))
	}
	if c.Offline {
		opts = append(opts, WithOffline(true))
	}
	return opts
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
