package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aspkit/internal/driver"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file.asp|directory>",
	Short: "Show how pages split between script and markup",
	Long:  `Stats counts script, markup and mixed lines per page, the HTML tags of the markup and the server-side includes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var statsFormat = newEnumFlag("pretty", "pretty", "json")

func init() {
	statsCmd.Flags().Var(statsFormat, "format", "output format (pretty|json)")
	statsCmd.Flags().Int("top-tags", 5, "number of most frequent tags to show per file")
}

type statsJSON struct {
	Path        string           `json:"path"`
	Lines       int              `json:"lines"`
	Blank       int              `json:"blank"`
	ScriptLines int              `json:"script_lines"`
	MarkupLines int              `json:"markup_lines"`
	MixedLines  int              `json:"mixed_lines"`
	Spans       map[string]int   `json:"spans"`
	Tags        map[string]int   `json:"tags"`
	Includes    []driver.Include `json:"includes,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	topTags, err := cmd.Flags().GetInt("top-tags")
	if err != nil {
		return fmt.Errorf("failed to get top-tags flag: %w", err)
	}
	all, err := driver.StatsDir(cmd.Context(), args[0], s.opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if statsFormat.String() == "json" {
		return writeStatsJSON(out, all)
	}
	writeStatsPretty(out, all, topTags)
	return nil
}

func writeStatsJSON(w io.Writer, all []driver.FileStats) error {
	payload := make([]statsJSON, len(all))
	for i, st := range all {
		payload[i] = statsJSON{
			Path: st.Path, Lines: st.Lines, Blank: st.Blank,
			ScriptLines: st.ScriptLines, MarkupLines: st.MarkupLines, MixedLines: st.MixedLines,
			Spans: st.Spans, Tags: st.Tags, Includes: st.Includes,
		}
		if st.Err != nil {
			payload[i].Error = st.Err.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeStatsPretty(w io.Writer, all []driver.FileStats, topTags int) {
	head := color.New(color.Bold)
	var total driver.FileStats
	fmt.Fprintf(w, "%s\n", head.Sprintf("%-40s %6s %6s %6s %6s %6s", "file", "lines", "script", "markup", "mixed", "blank"))
	for _, st := range all {
		if st.Err != nil {
			fmt.Fprintf(w, "%-40s %s\n", st.Path, color.RedString("error: %v", st.Err))
			continue
		}
		fmt.Fprintf(w, "%-40s %6d %6d %6d %6d %6d\n", st.Path, st.Lines, st.ScriptLines, st.MarkupLines, st.MixedLines, st.Blank)
		if tags := topN(st.Tags, topTags); tags != "" {
			fmt.Fprintf(w, "  tags: %s\n", tags)
		}
		for _, inc := range st.Includes {
			kind := "file"
			if inc.Virtual {
				kind = "virtual"
			}
			fmt.Fprintf(w, "  include %s=%q\n", kind, inc.Target)
		}
		total.Lines += st.Lines
		total.ScriptLines += st.ScriptLines
		total.MarkupLines += st.MarkupLines
		total.MixedLines += st.MixedLines
		total.Blank += st.Blank
	}
	if len(all) > 1 {
		fmt.Fprintf(w, "%s\n", head.Sprintf("%-40s %6d %6d %6d %6d %6d", fmt.Sprintf("total (%d files)", len(all)),
			total.Lines, total.ScriptLines, total.MarkupLines, total.MixedLines, total.Blank))
	}
}

// topN renders the n most frequent tags as "div×12 p×3", ties by name.
func topN(tags map[string]int, n int) string {
	if n <= 0 || len(tags) == 0 {
		return ""
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tags[names[i]] != tags[names[j]] {
			return tags[names[i]] > tags[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s×%d", name, tags[name])
	}
	return strings.Join(parts, " ")
}
