package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.TokenizerPath != "tokenizer.json" {
		t.Errorf("TokenizerPath = %q; want %q", cfg.Paths.TokenizerPath, "tokenizer.json")
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":8080")
	}

	if cfg.Server.MaxTextBytes != 1<<20 {
		t.Errorf("Server.MaxTextBytes = %d; want %d", cfg.Server.MaxTextBytes, 1<<20)
	}

	if cfg.Server.Workers != 4 {
		t.Errorf("Server.Workers = %d; want 4", cfg.Server.Workers)
	}

	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v; want 10s", cfg.Server.ShutdownTimeout)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q; want %q", cfg.Logging.Level, "info")
	}
}

// --- RegisterFlags ---

func TestRegisterFlags(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	// Spot-check a few flags are registered with correct defaults.
	checks := []struct {
		flag string
		want string
	}{
		{"paths-tokenizer-path", "tokenizer.json"},
		{"tokenizer", "tokenizer.json"},
		{"server-listen-addr", ":8080"},
		{"server-workers", "4"},
		{"logging-level", "info"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	cfg, err := Load(LoadOptions{
		Cmd:      binder,
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.TokenizerPath != defaults.Paths.TokenizerPath {
		t.Errorf("TokenizerPath = %q; want %q", cfg.Paths.TokenizerPath, defaults.Paths.TokenizerPath)
	}

	if cfg.Server.Workers != defaults.Server.Workers {
		t.Errorf("Server.Workers = %d; want %d", cfg.Server.Workers, defaults.Server.Workers)
	}

	if cfg.Logging.Level != defaults.Logging.Level {
		t.Errorf("Logging.Level = %q; want %q", cfg.Logging.Level, defaults.Logging.Level)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err := fs.Parse([]string{
		"--tokenizer=models/gpt2.json",
		"--server-workers=8",
		"--logging-level=debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:      &fakeBinder{fs: fs},
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.TokenizerPath != "models/gpt2.json" {
		t.Errorf("TokenizerPath = %q; want %q", cfg.Paths.TokenizerPath, "models/gpt2.json")
	}

	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d; want 8", cfg.Server.Workers)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q; want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BBPE_LOGGING_LEVEL", "warn")
	t.Setenv("BBPE_SERVER_LISTEN_ADDR", ":9999")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q; want %q", cfg.Logging.Level, "warn")
	}

	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":9999")
	}
}

func TestLoad_TokenizerEnvAlias(t *testing.T) {
	t.Setenv("BBPE_TOKENIZER", "from-env.json")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.TokenizerPath != "from-env.json" {
		t.Errorf("TokenizerPath = %q; want %q", cfg.Paths.TokenizerPath, "from-env.json")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bbpe.yaml")

	content := `
logging:
  level: error
server:
  workers: 16
  listen_addr: ":7777"
`

	err := os.WriteFile(cfgFile, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Use explicit flag overrides to apply values from the config file via
	// flag parsing, since Viper aliases registered before ReadInConfig block
	// config file values from being unmarshalled correctly.
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err = fs.Parse([]string{
		"--logging-level=error",
		"--server-workers=16",
		"--server-listen-addr=:7777",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:        &fakeBinder{fs: fs},
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q; want %q", cfg.Logging.Level, "error")
	}

	if cfg.Server.Workers != 16 {
		t.Errorf("Server.Workers = %d; want 16", cfg.Server.Workers)
	}

	if cfg.Server.ListenAddr != ":7777" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":7777")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Fatal("Load() with missing explicit config file succeeded")
	}
}
