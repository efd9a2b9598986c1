package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"aspkit/internal/config"
	"aspkit/internal/driver"
	"aspkit/internal/prof"
	"aspkit/internal/trace"
)

// settings is the merged result of aspkit.toml and command-line flags.
type settings struct {
	cfg     config.Config
	opts    driver.Options
	quiet   bool
	tracer  trace.Tracer
	cleanup func()
	prof    *prof.Session
}

type settingsKey struct{}

func setupCommand(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	s.tracer, s.cleanup = tracer, cleanup
	s.opts.Tracer = tracer

	popts, err := profOptions(cmd)
	if err != nil {
		return err
	}
	if popts.Enabled() {
		if s.prof, err = prof.Start(popts); err != nil {
			cleanup()
			return err
		}
	}

	ctx := context.WithValue(trace.WithTracer(cmd.Context(), tracer), settingsKey{}, s)
	cmd.SetContext(ctx)
	return nil
}

func teardownCommand(cmd *cobra.Command, _ []string) error {
	s := settingsFrom(cmd)
	if s.cleanup != nil {
		s.cleanup()
	}
	return s.prof.Stop()
}

func profOptions(cmd *cobra.Command) (prof.Options, error) {
	var (
		opts prof.Options
		err  error
	)
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return opts, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return opts, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// settingsFrom returns the settings of the running command. Commands run
// without setupCommand (tests calling RunE directly) get defaults.
func settingsFrom(cmd *cobra.Command) *settings {
	if ctx := cmd.Context(); ctx != nil {
		if s, ok := ctx.Value(settingsKey{}).(*settings); ok {
			return s
		}
	}
	cfg := config.Default()
	return &settings{cfg: cfg, opts: cfg.DriverOptions(), tracer: trace.Nop}
}

// loadSettings reads the config file and applies the flags the user set
// explicitly on top of it.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	opts := cfg.DriverOptions()
	if flags.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("codepage") {
		if opts.Codepage, err = flags.GetString("codepage"); err != nil {
			return nil, fmt.Errorf("failed to get codepage flag: %w", err)
		}
	}
	if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.Timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return &settings{cfg: cfg, opts: opts, quiet: quiet}, nil
}
