package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"<html><body>plain</body></html>",
	"<% Response.Write \"hi\" %>",
	"<%= Now() %>",
	"<%@ Language=\"VBScript\" CodePage=65001 %>",
	"<% If a Then %>x<% Else %>y<% End If %>",
	"<% For Each k In Request.Form %><li><%= k %></li><% Next %>",
	"<% Select Case n\nCase 1, 2\nx = 1\nCase Else\nx = 0\nEnd Select %>",
	"<% Class C\nPublic Property Get P\nP = 1\nEnd Property\nEnd Class %>",
	"<% s = \"%>\" %>",
	"<% ' comment %> tail",
	"<% x = 1 _\n + 2 %>",
	"<% d = #1/2/2003# : h = &HFF& : o = &O17 %>",
	"<!-- #include file=\"header.inc\" --><% Call Header() %>",
	"<% unterminated",
	"%> stray close <% <% nested",
	"<% End If %><% Wend %><% Next %>",
	"<% If a > 1 %><p>x</p><% end if %>",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все страницы и include-файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".asp", ".inc", ".vbs":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
