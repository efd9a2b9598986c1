package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aspkit/internal/diag"
	"aspkit/internal/diagfmt"
	"aspkit/internal/driver"
	"aspkit/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.asp|directory>",
	Short: "Print the token stream of ASP pages",
	Long:  `Tokenize splits a page into markup runs, block delimiters and VBScript tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var tokenizeFormat = newEnumFlag("pretty", "pretty", "json")

func init() {
	tokenizeCmd.Flags().Var(tokenizeFormat, "format", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "include whitespace and comments")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	var (
		fileSet *source.FileSet
		results []driver.TokenizeResult
	)
	if !info.IsDir() {
		fs, res, err := driver.Tokenize(args[0], s.opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		fileSet, results = fs, []driver.TokenizeResult{*res}
	} else {
		fileSet, results, err = driver.TokenizeDir(cmd.Context(), args[0], s.opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	bag := diag.NewBag(0)
	for i, res := range results {
		bag.Merge(res.Bag)
		if res.File == nil {
			continue
		}
		if info.IsDir() && tokenizeFormat.String() == "pretty" {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s\n", res.Path)
		}
		switch tokenizeFormat.String() {
		case "json":
			err = diagfmt.FormatTokensJSON(out, res.Tokens, trivia)
		default:
			err = diagfmt.FormatTokensPretty(out, res.Tokens, fileSet, trivia)
		}
		if err != nil {
			return err
		}
	}

	// Выводим диагностику в stderr, если есть
	if bag.Len() > 0 && !s.quiet {
		bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fileSet, diagfmt.PrettyOpts{
			Color:    useColor(os.Stderr),
			Context:  1,
			PathMode: pathModeFlag,
		})
	}
	return nil
}
