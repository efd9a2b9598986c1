package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeSpan, false},
		{LevelDetail, ScopeSpan, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "PHASE", "Detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if !strings.EqualFold(l.String(), s) {
			t.Errorf("ParseLevel(%q) = %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	sp := Begin(tr, ScopePass, "parse_file", 0)
	Begin(tr, ScopeSpan, "parse_span", sp.ID()).End("")
	sp.WithExtra("spans", "3").End("index.asp")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end.Kind != "end" || end.Detail != "index.asp" || end.Extra["spans"] != "3" {
		t.Errorf("unexpected end event: %+v", end)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindSpanEnd, Name: "reparse", Extra: map[string]string{"path": "script", "b": "1"}}
	line := string(FormatEvent(ev, FormatText))
	if !strings.Contains(line, "← reparse") || !strings.Contains(line, "{b=1, path=script}") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(r, ScopeNode, "tick", string(rune('a'+i)), 0)
	}
	got := r.Snapshot()
	if len(got) != 3 || got[0].Detail != "c" || got[2].Detail != "e" {
		t.Errorf("unexpected snapshot %+v", got)
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should give Nop")
	}
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.End("") != 0 {
		t.Error("nop span should not time")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer not carried")
	}
	root := Begin(r, ScopeDriver, "diag", 0)
	if ParentID(WithSpan(ctx, root)) != root.ID() {
		t.Error("span id not carried")
	}
}
