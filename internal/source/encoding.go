package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

func needsDecoding(codepage string) bool {
	switch strings.ToLower(strings.TrimSpace(codepage)) {
	case "", "utf-8", "utf8", "65001":
		return false
	default:
		return true
	}
}

// Decode converts content from a legacy code page to UTF-8.
// Names follow the WHATWG encoding index ("windows-1252", "shift_jis", ...);
// numeric Windows code pages used by the @CodePage directive are accepted too.
func Decode(content []byte, codepage string) ([]byte, error) {
	name := codepageName(codepage)
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown codepage %q: %w", codepage, err)
	}
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func codepageName(codepage string) string {
	cp := strings.ToLower(strings.TrimSpace(codepage))
	switch cp {
	case "1250", "1251", "1252", "1253", "1254", "1255", "1256", "1257", "1258":
		return "windows-" + cp
	case "932":
		return "shift_jis"
	case "936":
		return "gbk"
	case "949":
		return "euc-kr"
	case "950":
		return "big5"
	case "28591":
		return "iso-8859-1"
	case "20127":
		return "us-ascii"
	default:
		return cp
	}
}
