// Package config loads the effective todo configuration.
//
// Values are layered: defaults, then config.toml, then TODO_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/kv"
	"todo-cli/internal/logging"

	"github.com/BurntSushi/toml"
)

const (
	DefaultWebAddr  = "127.0.0.1:3335"
	DefaultLogLevel = "info"

	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"
)

type Config struct {
	DataDir  string `toml:"data_dir" json:"dataDir"`
	Backend  string `toml:"backend" json:"backend"`
	DSN      string `toml:"dsn" json:"dsn,omitempty"`
	LogLevel string `toml:"log_level" json:"logLevel"`

	Web WebConfig `toml:"web" json:"web"`
	TUI TUIConfig `toml:"tui" json:"tui"`
}

type WebConfig struct {
	Addr string `toml:"addr" json:"addr"`
	Open bool   `toml:"open" json:"open"`
}

type TUIConfig struct {
	Glyphs string `toml:"glyphs" json:"glyphs"`
}

// Source records which layer set a field.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Overrides carries flag values; nil fields were not set on the command line.
type Overrides struct {
	DataDir  *string
	Backend  *string
	DSN      *string
	LogLevel *string
	WebAddr  *string
	WebOpen  *bool
}

type LoadOptions struct {
	// Path is an explicit config file. When empty, ConfigPath() is used and a
	// missing file is fine.
	Path string
	// Getenv defaults to os.Getenv.
	Getenv    func(string) string
	Overrides Overrides
}

type Loaded struct {
	Config  Config
	Path    string
	Sources map[string]Source
}

func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Defaults() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DataDir:  dir,
		Backend:  kv.BackendSQLite,
		LogLevel: DefaultLogLevel,
		Web:      WebConfig{Addr: DefaultWebAddr},
		TUI:      TUIConfig{Glyphs: GlyphsUnicode},
	}, nil
}

func Load(opts LoadOptions) (*Loaded, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}
	sources := map[string]Source{}
	for _, k := range fieldNames {
		sources[k] = SourceDefault
	}

	path := strings.TrimSpace(opts.Path)
	explicit := path != ""
	if !explicit {
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if err := loadFile(&cfg, path, explicit, sources); err != nil {
		return nil, err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	loadEnv(&cfg, getenv, sources)
	applyOverrides(&cfg, opts.Overrides, sources)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path, Sources: sources}, nil
}

var fieldNames = []string{"data_dir", "backend", "dsn", "log_level", "web.addr", "web.open", "tui.glyphs"}

func loadFile(cfg *Config, path string, explicit bool, sources map[string]Source) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("loading config file %s: unknown key %q", path, undecoded[0].String())
	}
	for _, k := range fieldNames {
		if md.IsDefined(strings.Split(k, ".")...) {
			sources[k] = SourceFile
		}
	}
	return nil
}

func loadEnv(cfg *Config, getenv func(string) string, sources map[string]Source) {
	set := func(key, field string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
			sources[field] = SourceEnv
		}
	}
	set("TODO_DIR", "data_dir", &cfg.DataDir)
	set("TODO_BACKEND", "backend", &cfg.Backend)
	set("TODO_DSN", "dsn", &cfg.DSN)
	set("TODO_LOG_LEVEL", "log_level", &cfg.LogLevel)
	set("TODO_WEB_ADDR", "web.addr", &cfg.Web.Addr)
	set("TODO_TUI_GLYPHS", "tui.glyphs", &cfg.TUI.Glyphs)
}

func applyOverrides(cfg *Config, o Overrides, sources map[string]Source) {
	set := func(v *string, field string, dst *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		sources[field] = SourceFlag
	}
	set(o.DataDir, "data_dir", &cfg.DataDir)
	set(o.Backend, "backend", &cfg.Backend)
	set(o.DSN, "dsn", &cfg.DSN)
	set(o.LogLevel, "log_level", &cfg.LogLevel)
	set(o.WebAddr, "web.addr", &cfg.Web.Addr)
	if o.WebOpen != nil {
		cfg.Web.Open = *o.WebOpen
		sources["web.open"] = SourceFlag
	}
}

// Validate normalizes and checks the effective config.
func (c *Config) Validate() error {
	b, err := kv.NormalizeBackend(c.Backend)
	if err != nil {
		return err
	}
	c.Backend = b
	if b == kv.BackendMySQL && strings.TrimSpace(c.DSN) == "" {
		return errors.New("backend mysql requires a dsn (set dsn, TODO_DSN or --dsn)")
	}
	if b != kv.BackendMySQL && b != kv.BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("backend %s requires a data dir", b)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Glyphs)) {
	case "", GlyphsUnicode, "utf8":
		c.TUI.Glyphs = GlyphsUnicode
	case GlyphsASCII:
		c.TUI.Glyphs = GlyphsASCII
	default:
		return fmt.Errorf("invalid tui.glyphs %q (expected unicode|ascii)", c.TUI.Glyphs)
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		c.Web.Addr = DefaultWebAddr
	}
	return nil
}

// KV returns the storage options for this config.
func (c Config) KV() kv.Options {
	return kv.Options{Backend: c.Backend, Dir: c.DataDir, DSN: c.DSN}
}

// LogPath is where the TUI writes its log.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "todo.log")
}
