// Package app wires configuration, logging, terminal capture and the
// command state into a runnable application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/treeline-io/treeline/internal/command"
	"github.com/treeline-io/treeline/internal/config"
	"github.com/treeline-io/treeline/internal/log"
	"github.com/treeline-io/treeline/internal/term"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit requested")

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means the default
	// per-user location, and a missing file means built-in defaults.
	ConfigPath string

	// Commands are pre-composed command strings. When non-empty the
	// application runs in batch mode instead of opening the terminal.
	Commands []string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Debug forces debug logging.
	Debug bool

	// Output receives batch mode results. Defaults to os.Stdout.
	Output io.Writer
}

// Application is the running treeline instance.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *log.Logger
	state  *command.State

	capture *term.Capture
	watcher *config.Watcher
}

// New loads configuration and prepares an application.
func New(opts Options) (*Application, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, err := buildLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)

	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	return &Application{
		opts:   opts,
		cfg:    cfg,
		logger: logger.WithComponent("app"),
		state:  command.NewWithBindings(bindings),
	}, nil
}

// State exposes the command state, mainly for tests.
func (a *Application) State() *command.State {
	return a.state
}

// Run executes the application: batch mode when pre-composed commands
// were given, interactive capture otherwise. A user-requested exit is
// reported as ErrQuit.
func (a *Application) Run() error {
	if len(a.opts.Commands) > 0 {
		return a.RunBatch(a.opts.Commands)
	}
	return a.runInteractive()
}

// RunBatch derives an intent for each pre-composed command string and
// writes it to the configured output. A quit intent stops the batch.
func (a *Application) RunBatch(commands []string) error {
	for _, raw := range commands {
		s := command.FromString(raw)
		in := s.Intent()

		a.logger.Debug("batch command %q -> %s", raw, in.String())
		if _, err := fmt.Fprintf(a.opts.Output, "%s\n", in.String()); err != nil {
			return fmt.Errorf("writing batch result: %w", err)
		}

		if in.Kind == command.IntentQuit {
			return ErrQuit
		}
	}
	return nil
}

// runInteractive opens the terminal and feeds captured events through
// the command state until the user quits.
func (a *Application) runInteractive() error {
	resized := make(chan struct{}, 1)
	capture, err := term.New(term.Options{
		QueueSize: a.cfg.Input.QueueSize,
		Mouse:     a.cfg.MouseTracker(),
		Logger:    log.Default(),
		OnResize: func(width, height int) {
			select {
			case resized <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return err
	}
	a.capture = capture
	defer a.Shutdown()

	a.startConfigWatcher()
	capture.Start()

	a.render()

	watchEvents := a.watcherEvents()
	for {
		select {
		case ev, ok := <-capture.Events():
			if !ok {
				return nil
			}
			a.state.Apply(ev)
			if a.state.Intent().Kind == command.IntentQuit {
				a.logger.Info("quit requested")
				return ErrQuit
			}
			a.render()

		case <-resized:
			a.render()

		case <-watchEvents:
			a.reloadConfig()
		}
	}
}

// Shutdown releases the terminal and the config watcher. Safe to call
// more than once and on partially constructed applications.
func (a *Application) Shutdown() {
	if a.capture != nil {
		a.capture.Stop()
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
}

// startConfigWatcher begins watching the config file for live binding
// reload. Watch failures are logged, not fatal.
func (a *Application) startConfigWatcher() {
	w, err := config.NewWatcher(a.opts.ConfigPath)
	if err != nil {
		a.logger.Warn("config watch disabled: %v", err)
		return
	}
	a.watcher = w
}

// watcherEvents returns the reload channel, or nil when watching is
// disabled. A nil channel blocks forever in select, which is what we
// want.
func (a *Application) watcherEvents() <-chan config.ReloadEvent {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Events()
}

// reloadConfig re-reads the config file and applies the new bindings.
// A broken file keeps the previous configuration.
func (a *Application) reloadConfig() {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		a.logger.Warn("config reload failed: %v", err)
		return
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		a.logger.Warn("config reload failed: %v", err)
		return
	}

	a.cfg = cfg
	a.state.SetBindings(bindings)
	a.logger.Info("configuration reloaded")
}

// defaultConfigPath returns the per-user config location.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "treeline.toml"
	}
	return filepath.Join(dir, "treeline", "treeline.toml")
}

// buildLogger constructs the process logger from config and flag
// overrides.
func buildLogger(cfg *config.Config, opts Options) (*log.Logger, error) {
	level := log.ParseLevel(cfg.Log.Level)
	if opts.LogLevel != "" {
		level = log.ParseLevel(opts.LogLevel)
	}
	if opts.Debug {
		level = log.LevelDebug
	}

	lc := log.DefaultConfig()
	lc.Level = level

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		lc.Output = f
	} else if len(opts.Commands) == 0 {
		// Interactive mode owns the terminal; logs on stderr would
		// corrupt the display. Discard unless a file is configured.
		return log.Null, nil
	}

	return log.New(lc), nil
}
