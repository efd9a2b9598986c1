package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aspkit/internal/diagfmt"
	"aspkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "aspkit",
	Short: "Classic ASP scanner, parser and language server",
	Long:  `aspkit tokenizes, parses and checks Classic ASP pages (.asp, .inc, .asa) and VBScript files`,
	// конфиг и трассировка поднимаются до любой подкоманды
	PersistentPreRunE:  setupCommand,
	PersistentPostRunE: teardownCommand,
	SilenceUsage:       true,
}

var (
	colorFlag    = newEnumFlag("auto", "auto", "on", "off")
	pathModeFlag = diagfmt.PathModeAuto
	traceLevel   = newEnumFlag("off", "off", "error", "phase", "detail", "debug")
	traceFormat  = newEnumFlag("auto", "auto", "text", "ndjson")
	traceStorage = newEnumFlag("stream", "stream", "ring", "both")
)

// init registers subcommands and persistent flags.
func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.Var(colorFlag, "color", "colorize output (auto|on|off)")
	pf.Var(&pathModeFlag, "path-mode", "how file paths are printed (auto|absolute|relative|basename)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	pf.String("config", "", "path to aspkit.toml (default: search upwards from the working directory)")
	pf.String("codepage", "", "decode input from this codepage before scanning (e.g. windows-1252)")
	pf.String("trace", "", "write trace events to this file (- for stderr)")
	pf.Var(traceLevel, "trace-level", "trace verbosity (off|error|phase|detail|debug)")
	pf.Var(traceFormat, "trace-format", "trace output format (auto|text|ndjson)")
	pf.Var(traceStorage, "trace-mode", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring trace buffer")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command. A failed command exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(f *os.File) bool {
	switch colorFlag.String() {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
