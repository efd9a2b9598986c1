package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aspkit/internal/diag"
	"aspkit/internal/diagfmt"
	"aspkit/internal/driver"
	"aspkit/internal/observ"
	"aspkit/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.asp|directory>",
	Short: "Check ASP pages for lexical, syntax and block errors",
	Long:  `Run diagnostics on a page or on every page, include file and script under a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

var (
	diagFormat = newEnumFlag("pretty", "pretty", "json", "short")
	diagUI     = newEnumFlag("off", "auto", "on", "off")
)

// init registers the flags of the diag command.
func init() {
	diagCmd.Flags().Var(diagFormat, "format", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	diagCmd.Flags().Bool("no-cache", false, "disable the disk cache even when aspkit.toml enables it")
	diagCmd.Flags().Var(diagUI, "ui", "show a progress view (auto|on|off)")
	diagCmd.Flags().Bool("watch", false, "re-run diagnostics when files change")
}

type diagOptions struct {
	format     string
	noWarnings bool
	withNotes  bool
	ui         bool
	quiet      bool
}

// runDiagnose checks the path once, or keeps re-checking it with --watch.
// Any error diagnostic makes the command fail.
func runDiagnose(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	flags := cmd.Flags()
	opts := s.opts

	var (
		dopts            diagOptions
		cacheOn, noCache bool
		watch            bool
		err              error
	)
	dopts.format = diagFormat.String()
	dopts.quiet = s.quiet
	if dopts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if dopts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if flags.Changed("warnings-as-errors") {
		if opts.WarningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if cacheOn, err = flags.GetBool("cache"); err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if noCache, err = flags.GetBool("no-cache"); err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if watch, err = flags.GetBool("watch"); err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	dopts.ui = shouldUseTUI(diagUI.String()) && dopts.format == "pretty" && !watch

	if (cacheOn || s.cfg.Cache.Enabled) && !noCache {
		cache, err := driver.OpenDiskCache(s.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		opts.Cache = cache
	}

	if !watch {
		hasErrors, err := diagnoseOnce(cmd.Context(), cmd, args[0], opts, dopts)
		if err != nil {
			return err
		}
		if hasErrors {
			return errDiagnostics
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndDiagnose(ctx, args[0], opts, func() error {
		_, err := diagnoseOnce(ctx, cmd, args[0], opts, dopts)
		return err
	})
}

var errDiagnostics = fmt.Errorf("diagnostics reported errors")

// diagnoseOnce runs one check of path and prints the report. It returns
// whether any error diagnostic remained.
func diagnoseOnce(ctx context.Context, cmd *cobra.Command, path string, opts driver.Options, dopts diagOptions) (bool, error) {
	var (
		fileSet *source.FileSet
		results []driver.ParseResult
		err     error
	)
	if dopts.ui {
		fileSet, results, err = runCheckWithUI(ctx, path, opts)
	} else {
		fileSet, results, err = driver.Check(ctx, path, opts)
	}
	if err != nil {
		return false, fmt.Errorf("diagnostics failed: %w", err)
	}

	bag := diag.NewBag(0)
	var (
		timings []observ.Report
		cached  int
	)
	for _, res := range results {
		for _, d := range res.Bag.Items() {
			if dopts.noWarnings && d.Severity < diag.SevError {
				continue
			}
			bag.Add(d)
		}
		if res.Timing != nil {
			timings = append(timings, *res.Timing)
		}
		if res.Cached {
			cached++
		}
	}
	bag.Sort()

	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, bag, fileSet, dopts); err != nil {
		return false, err
	}
	if dopts.format != "json" && !dopts.quiet {
		summary(cmd.ErrOrStderr(), bag, len(results), cached)
	}
	if len(timings) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), observ.Merge(timings...).Summary())
	}
	return bag.HasErrors(), nil
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, dopts diagOptions) error {
	popts := diagfmt.PrettyOpts{
		Color:     useColor(os.Stdout),
		Context:   1,
		PathMode:  pathModeFlag,
		ShowNotes: dopts.withNotes,
	}
	switch dopts.format {
	case "json":
		return diagfmt.JSON(w, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathModeFlag,
			IncludeNotes:     dopts.withNotes,
		})
	case "short":
		diagfmt.Short(w, bag, fileSet, popts)
	default:
		diagfmt.Pretty(w, bag, fileSet, popts)
	}
	return nil
}

func summary(w io.Writer, bag *diag.Bag, files, cached int) {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	fmt.Fprintf(w, "%d file(s) checked", files)
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintf(w, ": %d error(s), %d warning(s)\n", errs, warns)
}
