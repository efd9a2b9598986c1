package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"aspkit/internal/lsp"
	"aspkit/internal/parser"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the ASP language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before diagnostics are published after an edit")
	lspCmd.Flags().CountP("verbose", "v", "log verbosity on stderr (repeat for more)")
	lspCmd.Flags().String("log-file", "", "write the server log to this file instead of stderr")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	s := settingsFrom(cmd)
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	verbose, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	// stdout занят протоколом: лог только в stderr или файл
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbose, path)

	server := lsp.NewServer(lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Parser:         parser.Options{MaxTokenLength: s.opts.MaxTokenLength},
		Tracer:         s.tracer,
	})
	return server.RunStdio()
}
