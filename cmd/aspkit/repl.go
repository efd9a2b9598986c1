package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"aspkit/internal/blocks"
	"aspkit/internal/diag"
	"aspkit/internal/diagfmt"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

const historyFile = ".aspkit_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse VBScript interactively and print the trees",
	Long: `Repl reads statements, parses them and prints the syntax tree with diagnostics.
Blocks left open (If, For, Sub, ...) continue on the next line; an empty line parses what was typed.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().Bool("markup", false, "treat input as an ASP page with <% %> blocks instead of plain script")
	replCmd.Flags().Bool("tokens", false, "include tokens in the tree")
}

type replState struct {
	markup bool
	tree   diagfmt.TreeOpts
	popts  parser.Options
	color  bool
}

func runRepl(cmd *cobra.Command, _ []string) error {
	s := settingsFrom(cmd)
	st := replState{popts: parser.Options{MaxTokenLength: s.opts.MaxTokenLength}, color: useColor(os.Stdout)}
	var err error
	if st.markup, err = cmd.Flags().GetBool("markup"); err != nil {
		return fmt.Errorf("failed to get markup flag: %w", err)
	}
	if st.tree.Tokens, err = cmd.Flags().GetBool("tokens"); err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "aspkit repl; :help for commands")
	for {
		src, ok := readUntilClosed(ln, &st)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := st.command(out, trimmed); quit {
				return nil
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		st.eval(out, src)
	}
}

// command handles ":name" lines and reports whether to quit.
func (st *replState) command(out io.Writer, line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":q", ":exit":
		return true
	case ":tokens":
		st.tree.Tokens = !st.tree.Tokens
		fmt.Fprintf(out, "tokens: %v\n", st.tree.Tokens)
	case ":markup":
		st.markup = !st.markup
		fmt.Fprintf(out, "markup: %v\n", st.markup)
	case ":help":
		fmt.Fprintln(out, ":tokens  toggle token leaves")
		fmt.Fprintln(out, ":markup  toggle ASP page input")
		fmt.Fprintln(out, ":quit    leave")
	default:
		fmt.Fprintln(out, "unknown command; :help lists them")
	}
	return false
}

func (st *replState) parse(src string) (*syntax.Tree, *source.FileSet) {
	name := "repl.vbs"
	if st.markup {
		name = "repl.asp"
	}
	fs := source.NewFileSet()
	tree := parser.ParseText(fs, name, src, st.popts)
	return tree.WithDiagnostics(blocks.Analyze(tree).Diagnostics), fs
}

func (st *replState) eval(out io.Writer, src string) {
	tree, fs := st.parse(src)
	if err := diagfmt.FormatTreePretty(out, tree, st.tree); err != nil {
		fmt.Fprintln(out, color.RedString(err.Error()))
		return
	}
	bag := diag.NewBag(0)
	bag.AddAll(tree.Diagnostics())
	bag.Sort()
	diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{Color: st.color, PathMode: diagfmt.PathModeBasename})
}

// readUntilClosed reads lines while the input so far leaves a block open.
// An empty continuation line ends the input early.
func readUntilClosed(ln *liner.State, st *replState) (string, bool) {
	var b strings.Builder
	for {
		prompt := "asp> "
		if b.Len() > 0 {
			prompt = "...  "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			if b.Len() > 0 && errors.Is(err, liner.ErrPromptAborted) {
				return "", true
			}
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !st.incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports input that ends inside an open block or an open
// <% block.
func (st *replState) incomplete(src string) bool {
	tree, _ := st.parse(src)
	for _, d := range tree.Diagnostics() {
		if d.Code == diag.BlkUnclosed || d.Code == diag.ScnUnterminatedBlock {
			return true
		}
	}
	return false
}
