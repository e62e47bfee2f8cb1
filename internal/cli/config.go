package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/ermview/pkg/errors"
)

// Environment variables read by the CLI.
const (
	envConfig   = "ERMVIEW_CONFIG"
	envLogLevel = "ERMVIEW_LOG_LEVEL"
)

// Config is the on-disk CLI configuration.
//
//	log_level = "info"
//
//	[output]
//	indent  = 2
//	logical = false
//
//	[render]
//	format  = "svg"
//	columns = true
type Config struct {
	LogLevel string       `toml:"log_level"`
	Output   OutputConfig `toml:"output"`
	Render   RenderConfig `toml:"render"`
}

// OutputConfig controls printed output.
type OutputConfig struct {
	// Indent is the JSON indent width used by open; 0 prints compact JSON.
	Indent int `toml:"indent"`
	// Logical shows logical names instead of physical ones where present.
	Logical bool `toml:"logical"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Format  string `toml:"format"`
	Columns bool   `toml:"columns"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output:   OutputConfig{Indent: 2},
		Render:   RenderConfig{Format: formatSVG, Columns: true},
	}
}

// configPath returns the config file to read and whether the user named it
// explicitly. The default location may be missing; an explicit one may not.
func configPath(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(envConfig); env != "" {
		return env, true
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appName, "config.toml"), false
}

// loadConfig reads the config file over the defaults. Unknown keys are
// rejected so typos do not pass silently.
func loadConfig(flag string) (Config, error) {
	cfg := defaultConfig()

	path, explicit := configPath(flag)
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return defaultConfig(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Output.Indent < 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: output.indent must not be negative", path)
	}
	if err := errors.ValidateFormat(cfg.Render.Format, renderFormats...); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s: render.format", path)
	}
	return cfg, nil
}

// loadDotEnv loads .env from the working directory if there is one.
// Variables already set in the environment are kept.
func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func resolveLogLevel(cfg Config, verbose bool) (log.Level, error) {
	if verbose {
		return log.DebugLevel, nil
	}
	name := cfg.LogLevel
	if env := os.Getenv(envLogLevel); env != "" {
		name = env
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level %q", name)
	}
	return level, nil
}
