// Package cli implements the ermview command-line interface.
//
// ermview opens diagram exchange files (.erm) and shows what is in them:
// the canonical model as JSON, summary statistics, tables, columns with
// groups expanded, relationships, a Graphviz rendering and an interactive
// table browser.
//
// # Commands
//
//   - open: print the diagram in its transport (JSON) shape
//   - info: summarize a diagram and the file revision it was written in
//   - tables, columns, relationships: tabular listings
//   - render: write DOT or SVG with tables pinned at their stored positions
//   - browse: interactive terminal browser
//   - completion: shell completion scripts
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/ermview/config.toml (or the file
// named by --config or ERMVIEW_CONFIG). A .env file in the working directory
// is loaded first, so ERMVIEW_* variables can live there. Flags override the
// config file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels on the command's context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ermview/pkg/buildinfo"
	"github.com/matzehuels/ermview/pkg/erm"
	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/errors"
)

// appName is used for the config directory and environment prefix.
const appName = "ermview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a CLI that logs to w at level until a config or --verbose
// says otherwise.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "ermview inspects ER diagram files",
		Long:          `ermview reads ER diagram exchange files (.erm) written by any revision of the diagram editor and shows their tables, columns and relationships.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ermview/config.toml)")

	root.AddCommand(c.openCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.tablesCommand())
	root.AddCommand(c.columnsCommand())
	root.AddCommand(c.relationshipsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads .env and the config file, then settles the log level:
// --verbose wins over ERMVIEW_LOG_LEVEL, which wins over the config file.
func (c *CLI) setup() error {
	if err := loadDotEnv(); err != nil {
		c.Logger.Warn("ignoring .env", "err", err)
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := resolveLogLevel(cfg, c.verbose)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	return nil
}

// load validates path and reads the diagram through a logging loader.
func (c *CLI) load(path string) (*erm.Report, error) {
	if err := errors.ValidateDiagramPath(path); err != nil {
		return nil, err
	}
	prog := newProgress(c.Logger)
	r, err := erm.NewLoader(c.Logger).Inspect(path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + path)
	return r, nil
}

// loadTable loads path and looks up one table by physical name.
func (c *CLI) loadTable(path, name string) (*entity.Diagram, entity.Table, error) {
	r, err := c.load(path)
	if err != nil {
		return nil, entity.Table{}, err
	}
	t, ok := erm.FindTable(r.Diagram, name)
	if !ok {
		return nil, entity.Table{}, errors.New(errors.ErrCodeNotFound, "no table %q in %s", name, path)
	}
	return r.Diagram, t, nil
}
