// Command pb is the sales playbook: an interactive checklist and objection
// guide for retail floor staff, plus a few non-interactive commands for
// printing content and scripting scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/playbook/pkg/config"
	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/logging"
	"github.com/vanderheijden86/playbook/pkg/session"
	"github.com/vanderheijden86/playbook/pkg/ui"
	"github.com/vanderheijden86/playbook/pkg/watcher"
)

// app carries what every command needs once the root pre-run has loaded it.
type app struct {
	// flags
	configPath  string
	contentPath string
	verbose     bool

	cfg      config.Config
	ds       *content.Dataset
	logger   *zap.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{logger: zap.NewNop()})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pb",
		Short: "Playbook de ventas: checklist, objeciones y escenarios",
		Long: `pb is a reference guide for retail sales staff.

It presents three topics (traffic, conversion, ticket size), each with a
checklist and its common mistakes, scripted answers to customer objections,
and "¿Qué está pasando?" scenarios that jump to the relevant items.

Run without arguments to open the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []ui.Option{ui.WithLogger(a.logger)}
			if path := a.cfg.Content.Path; path != "" {
				w, err := a.watchContent(path)
				if err != nil {
					a.logger.Warn("live reload disabled", zap.String("path", path), zap.Error(err))
				} else {
					defer w.Stop()
					opts = append(opts, ui.WithContentWatcher(w))
				}
			}
			m := ui.NewModel(a.newSession(), opts...)
			a.logger.Info("starting tui", zap.String("topic", string(a.cfg.UI.DefaultTopic)))
			return runTUIProgram(m)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/playbook/config.yaml)")
	root.PersistentFlags().StringVar(&a.contentPath, "content", "", "Alternate playbook YAML (or set PB_CONTENT)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Also write log records to stderr")

	root.AddCommand(
		newShowCmd(a),
		newSearchCmd(a),
		newObjectionCmd(a),
		newScenarioCmd(a),
		newScenariosCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	closeLogAfter(root, a)
	return root
}

// closeLogAfter makes every command release the log on the way out. cobra
// skips PersistentPostRunE when RunE fails, so the close rides on RunE.
func closeLogAfter(c *cobra.Command, a *app) {
	switch {
	case c.RunE != nil:
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if cerr := a.closeLogs(); err == nil {
				err = cerr
			}
			return err
		}
	case c.Run != nil:
		run := c.Run
		c.Run = func(cmd *cobra.Command, args []string) {
			defer a.closeLogs()
			run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		closeLogAfter(sub, a)
	}
}

// closeLogs flushes and closes the log once; later calls are no-ops.
func (a *app) closeLogs() error {
	if a.closeLog == nil {
		return nil
	}
	closeFn := a.closeLog
	a.closeLog = nil
	return closeFn()
}

// setup resolves config (flag > env > file > default), builds the logger and
// loads the dataset.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg     config.Config
		loadErr error
	)
	if a.configPath != "" {
		cfg, loadErr = config.LoadFrom(a.configPath)
	} else {
		cfg, loadErr = config.Load()
	}
	cfg.ApplyEnv()
	if a.contentPath != "" {
		cfg.Content.Path = a.contentPath
	}
	a.cfg = cfg

	opts := logging.FromConfig(cfg)
	opts.Warn = cmd.ErrOrStderr()
	// The TUI owns the terminal; only plain commands tee to stderr.
	if a.verbose && cmd != cmd.Root() {
		opts.Console = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logger, a.closeLog = logger, closeLog

	if loadErr != nil {
		// Config problems are not fatal; defaults are already in place.
		a.logger.Warn("config ignored", zap.Error(loadErr))
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", loadErr)
	}

	if cfg.Content.Path != "" {
		a.ds, err = content.LoadFile(cfg.Content.Path)
	} else {
		a.ds, err = content.Default()
	}
	if err != nil {
		a.logger.Error("dataset rejected", zap.String("source", cfg.Content.Path), zap.Error(err))
		_ = a.closeLogs()
		return err
	}
	a.logger.Debug("dataset loaded",
		zap.String("source", cfg.Content.Path),
		zap.Int("items", a.ds.ItemCount()),
		zap.Int("objections", len(a.ds.Objections())),
		zap.Int("scenarios", len(a.ds.Scenarios())))
	return nil
}

// watchContent starts a watcher on the alternate playbook so edits show up
// in the running view.
func (a *app) watchContent(path string) (*watcher.Watcher, error) {
	w, err := watcher.New(path,
		watcher.WithOnError(func(err error) {
			a.logger.Warn("playbook watch error", zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	a.logger.Debug("watching playbook", zap.String("path", w.Path()), zap.Bool("polling", w.IsPolling()))
	return w, nil
}

// configFile is the config path in effect: --config, else the XDG default.
func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.ConfigPath()
}

// newSession opens a session configured from the loaded config.
func (a *app) newSession() *session.Session {
	return session.New(a.ds,
		session.WithInitialTopic(a.cfg.UI.DefaultTopic),
		session.WithResponseDetail(a.cfg.UI.ExpandedResponses),
		session.WithPermissiveToggles(a.cfg.Session.PermissiveToggles),
		session.WithLogger(a.logger),
	)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
