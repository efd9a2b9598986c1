package testkit_test

import (
	"testing"

	"aspkit/internal/incremental"
	"aspkit/internal/parser"
	"aspkit/internal/source"
	"aspkit/internal/testkit"
)

func TestCheckTreeInvariants(t *testing.T) {
	srcs := []string{
		"",
		"<p>plain</p>",
		"<%@ Language=\"VBScript\" %><% Dim a : a = 1 %><%= a %>",
		"<% If a Then %>x<% Else %>y<% End If %>",
		"<% Sub S(\n  If Then\n%><b>",
		"<% x = \"open",
	}
	for _, src := range srcs {
		tr := parser.ParseText(source.NewFileSet(), "page.asp", src, parser.Options{})
		if err := testkit.CheckTreeInvariants(tr); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeInvariantsAfterEdit(t *testing.T) {
	tr := parser.ParseText(source.NewFileSet(), "page.asp", "<% a = 1 %><p>x</p><% b = 2 %>", parser.Options{})
	got, _, err := incremental.ApplyEdit(tr, incremental.Edit{Start: 3, End: 4, Text: "alpha"})
	if err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckTreeInvariants(got); err != nil {
		t.Fatal(err)
	}
}

func TestCheckTreeInvariantsNil(t *testing.T) {
	if testkit.CheckTreeInvariants(nil) == nil {
		t.Fatal("nil tree must fail")
	}
}
