package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aspkit/internal/blocks"
	"aspkit/internal/diagfmt"
	"aspkit/internal/driver"
	"aspkit/internal/syntax"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.asp>",
	Short: "Print the syntax tree of an ASP page",
	Long:  `Parse builds the syntax tree of one page, pairs its blocks and prints the tree, or an outline of the blocks`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseFormat = newEnumFlag("pretty", "pretty", "json")

func init() {
	parseCmd.Flags().Var(parseFormat, "format", "output format (pretty|json)")
	parseCmd.Flags().Bool("tokens", false, "include tokens as leaves")
	parseCmd.Flags().Bool("trivia", false, "include whitespace and comment tokens (implies --tokens)")
	parseCmd.Flags().Bool("positions", false, "print line:col ranges instead of byte offsets")
	parseCmd.Flags().Bool("outline", false, "print the matched blocks instead of the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	flags := cmd.Flags()
	var opts diagfmt.TreeOpts
	var outline bool
	var err error
	if opts.Tokens, err = flags.GetBool("tokens"); err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	if opts.Trivia, err = flags.GetBool("trivia"); err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	opts.Tokens = opts.Tokens || opts.Trivia
	if opts.Positions, err = flags.GetBool("positions"); err != nil {
		return fmt.Errorf("failed to get positions flag: %w", err)
	}
	if outline, err = flags.GetBool("outline"); err != nil {
		return fmt.Errorf("failed to get outline flag: %w", err)
	}

	fileSet, res, err := driver.Parse(args[0], s.opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case outline:
		diagfmt.Outline(out, res.File, outlineEntries(res.Blocks.Pairs))
	case parseFormat.String() == "json":
		err = diagfmt.FormatTreeJSON(out, res.Tree, opts)
	default:
		err = diagfmt.FormatTreePretty(out, res.Tree, opts)
	}
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 && !s.quiet {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, fileSet, diagfmt.PrettyOpts{
			Color:    useColor(os.Stderr),
			Context:  1,
			PathMode: pathModeFlag,
		})
	}
	if res.Timing != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
	}
	return nil
}

func outlineEntries(pairs []blocks.Pair) []diagfmt.OutlineEntry {
	out := make([]diagfmt.OutlineEntry, len(pairs))
	for i, p := range pairs {
		out[i] = diagfmt.OutlineEntry{Label: outlineLabel(p.Kind), Range: p.Range, CrossSpan: p.CrossSpan}
	}
	return out
}

func outlineLabel(k syntax.NodeKind) string {
	switch k {
	case syntax.IfStatement:
		return "If"
	case syntax.ForStatement:
		return "For"
	case syntax.ForEachStatement:
		return "For Each"
	case syntax.WhileStatement:
		return "While"
	case syntax.DoLoopStatement:
		return "Do"
	case syntax.SelectStatement:
		return "Select Case"
	case syntax.WithStatement:
		return "With"
	case syntax.SubDeclaration:
		return "Sub"
	case syntax.FunctionDeclaration:
		return "Function"
	case syntax.PropertyDeclaration:
		return "Property"
	case syntax.ClassDeclaration:
		return "Class"
	}
	return k.String()
}
