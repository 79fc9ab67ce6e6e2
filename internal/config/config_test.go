package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	got, err := Load(LoadOptions{Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := got.Config
	if c.DataDir != dir || c.Backend != "sqlite" || c.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %#v", c)
	}
	if c.Web.Addr != DefaultWebAddr || c.TUI.Glyphs != GlyphsUnicode {
		t.Fatalf("unexpected defaults: %#v", c)
	}
	if got.Path != filepath.Join(dir, "config.toml") {
		t.Fatalf("path = %q", got.Path)
	}
	if got.Sources["backend"] != SourceDefault {
		t.Fatalf("backend source = %q", got.Sources["backend"])
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())
	p := writeConfig(t, `
data_dir = "/from/file"
backend = "file"
log_level = "warn"

[web]
addr = ":9000"
open = true

[tui]
glyphs = "ascii"
`)

	got, err := Load(LoadOptions{
		Path: p,
		Getenv: envMap(map[string]string{
			"TODO_BACKEND":   "memory",
			"TODO_LOG_LEVEL": "debug",
		}),
		Overrides: Overrides{LogLevel: strPtr("error")},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := got.Config
	if c.DataDir != "/from/file" || c.Web.Addr != ":9000" || !c.Web.Open || c.TUI.Glyphs != GlyphsASCII {
		t.Fatalf("file values not applied: %#v", c)
	}
	if c.Backend != "memory" {
		t.Fatalf("env should override file backend, got %q", c.Backend)
	}
	if c.LogLevel != "error" {
		t.Fatalf("flag should override env log level, got %q", c.LogLevel)
	}
	want := map[string]Source{
		"data_dir":  SourceFile,
		"backend":   SourceEnv,
		"log_level": SourceFlag,
		"dsn":       SourceDefault,
	}
	for k, v := range want {
		if got.Sources[k] != v {
			t.Fatalf("source[%s] = %q, want %q", k, got.Sources[k], v)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())

	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantSub string
	}{
		{"malformed toml", "backend = ", nil, "loading config file"},
		{"unknown key", "colour = \"red\"\n", nil, "unknown key"},
		{"unknown backend", "backend = \"redis\"\n", nil, "unknown storage backend"},
		{"mysql without dsn", "", map[string]string{"TODO_BACKEND": "mysql"}, "requires a dsn"},
		{"bad glyphs", "[tui]\nglyphs = \"emoji\"\n", nil, "tui.glyphs"},
		{"bad log level", "log_level = \"loud\"\n", nil, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeConfig(t, tt.body)
			_, err := Load(LoadOptions{Path: p, Getenv: envMap(tt.env)})
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())

	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.toml"), Getenv: envMap(nil)})
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestConfig_KVAndLogPath(t *testing.T) {
	t.Parallel()

	c := Config{DataDir: "/data", Backend: "file"}
	o := c.KV()
	if o.Backend != "file" || o.Dir != "/data" {
		t.Fatalf("KV() = %#v", o)
	}
	if c.LogPath() != filepath.Join("/data", "todo.log") {
		t.Fatalf("LogPath() = %q", c.LogPath())
	}
}

func TestLoad_WebFlagsOverrideFileAndEnv(t *testing.T) {
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())

	p := writeConfig(t, "[web]\naddr = \":9000\"\nopen = true\n")
	off := false
	got, err := Load(LoadOptions{
		Path:      p,
		Getenv:    envMap(map[string]string{"TODO_WEB_ADDR": ":9100"}),
		Overrides: Overrides{WebAddr: strPtr(" 127.0.0.1:0 "), WebOpen: &off},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Config.Web.Addr != "127.0.0.1:0" || got.Config.Web.Open {
		t.Fatalf("web overrides not applied: %#v", got.Config.Web)
	}
	if got.Sources["web.addr"] != SourceFlag || got.Sources["web.open"] != SourceFlag {
		t.Fatalf("sources = %v", got.Sources)
	}
}
