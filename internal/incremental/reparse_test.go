package incremental_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"aspkit/internal/diag"
	"aspkit/internal/incremental"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/syntax"
)

func parse(name, src string) *syntax.Tree {
	return parser.ParseText(source.NewFileSet(), name, src, parser.Options{})
}

func render(ds []diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = fmt.Sprintf("%s@%d..%d", d.Code.ID(), d.Primary.Start, d.Primary.End)
	}
	sort.Strings(out)
	return out
}

// requireFresh checks got against a from-scratch parse of the same text.
func requireFresh(t *testing.T, got *syntax.Tree) {
	t.Helper()
	want := parser.ParseFile(got.File(), parser.Options{})
	require.Equal(t, want.Dump(), got.Dump())
	require.Equal(t, render(want.Diagnostics()), render(got.Diagnostics()))
	require.Equal(t, want.Spans(), got.Spans())
}

func TestScriptEditReparsesOneSpan(t *testing.T) {
	prev := parse("p.asp", "<% a = 1 %>")
	next, st, err := incremental.ApplyEdit(prev, incremental.Edit{Start: 8, End: 8, Text: "+1"})
	require.NoError(t, err)
	require.Equal(t, incremental.PathScript, st.Path)
	require.Equal(t, 1, st.Reparsed)
	require.Equal(t, "<% a = 1+1 %>", next.Source())
	require.Equal(t, prev.File().ID, next.File().ID)

	asg := next.FindAll(syntax.VariableAssignment)
	require.Len(t, asg, 1)
	kids := next.ChildNodes(asg[0])
	rhs := kids[len(kids)-1]
	require.Equal(t, syntax.BinaryExpression, next.Kind(rhs))
	require.Equal(t, "1+1", next.Text(rhs))
	requireFresh(t, next)
}

func TestUntouchedSpansAreShared(t *testing.T) {
	prev := parse("p.asp", "<% If a Then %><p>x</p><% End If %>")
	next, st, err := incremental.ApplyEdit(prev, incremental.Edit{Start: 6, End: 7, Text: "bb"})
	require.NoError(t, err)
	require.Equal(t, incremental.PathScript, st.Path)
	require.Equal(t, 2, st.Reused)

	require.NotSame(t, prev.Part(0).Green, next.Part(0).Green)
	require.Same(t, prev.Part(1).Green, next.Part(1).Green)
	require.Same(t, prev.Part(2).Green, next.Part(2).Green)
	require.Equal(t, prev.Spans()[2].Range.Start+1, next.Spans()[2].Range.Start)
	requireFresh(t, next)
}

func TestMarkupEdit(t *testing.T) {
	prev := parse("p.asp", "<p>hello</p><%= name %>")
	next, st, err := incremental.ApplyEdit(prev, incremental.Edit{Start: 3, End: 8, Text: "bye"})
	require.NoError(t, err)
	require.Equal(t, incremental.PathMarkup, st.Path)
	require.Equal(t, "<p>bye</p><%= name %>", next.Source())
	require.Same(t, prev.Part(1).Green, next.Part(1).Green)
	requireFresh(t, next)
}

func TestEditsThatMoveDelimitersFallBack(t *testing.T) {
	cases := []struct {
		name string
		src  string
		edit incremental.Edit
	}{
		{"inserts closer", "<% a = 1 %>", incremental.Edit{Start: 5, End: 5, Text: "%>"}},
		{"inserts opener in markup", "<p>x</p>", incremental.Edit{Start: 3, End: 3, Text: "<%"}},
		{"deletes opener", "<p>x</p><% a %>", incremental.Edit{Start: 8, End: 10}},
		{"turns block into echo", "<% a %>", incremental.Edit{Start: 2, End: 2, Text: "="}},
		{"empties markup", "<% a %>x<% b %>", incremental.Edit{Start: 7, End: 8}},
		{"spans two blocks", "<% a %>x<% b %>", incremental.Edit{Start: 3, End: 12, Text: "c"}},
		{"closes unterminated", "<% a", incremental.Edit{Start: 4, End: 4, Text: " %>"}},
		{"empty document", "", incremental.Edit{Text: "<% a %>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, st, err := incremental.ApplyEdit(parse("p.asp", tc.src), tc.edit)
			require.NoError(t, err)
			require.Equal(t, incremental.PathFull, st.Path)
			requireFresh(t, next)
		})
	}
}

func TestScriptFilesAlwaysReparseFully(t *testing.T) {
	prev := parse("lib.vbs", "Dim a\na = 1\n")
	next, st, err := incremental.ApplyEdit(prev, incremental.Edit{Start: 4, End: 5, Text: "b"})
	require.NoError(t, err)
	require.Equal(t, incremental.PathFull, st.Path)
	requireFresh(t, next)
}

func TestInvalidEdit(t *testing.T) {
	prev := parse("p.asp", "<% a %>")
	_, _, err := incremental.ApplyEdit(prev, incremental.Edit{Start: 3, End: 2})
	require.Error(t, err)
	_, _, err = incremental.ApplyEdit(prev, incremental.Edit{Start: 0, End: 8})
	require.Error(t, err)
}

func TestRandomEditsMatchFreshParse(t *testing.T) {
	src := "<html>\n<% Dim x\nIf x > 1 Then %>\n<b><%= x %></b>\n<% Else %>\n<i>none</i>\n<% End If\n" +
		"For i = 1 To 3\nResponse.Write i\nNext %>\n<%@ Language=\"VBScript\" %>\n</html>"
	pieces := []string{"", "x", " ", "\n", "1", "+ 2", "%", ">", "<", "=", "End If", "If a Then", "\"s", "'c"}

	rng := rand.New(rand.NewSource(7))
	tree := parse("r.asp", src)
	for step := 0; step < 300; step++ {
		n := int(tree.File().Len())
		a := rng.Intn(n + 1)
		b := a + rng.Intn(min(4, n-a)+1)
		e := incremental.Edit{Start: uint32(a), End: uint32(b), Text: pieces[rng.Intn(len(pieces))]}

		next, _, err := incremental.ApplyEdit(tree, e)
		require.NoError(t, err, "step %d", step)
		requireFresh(t, next)
		tree = next
	}
}
