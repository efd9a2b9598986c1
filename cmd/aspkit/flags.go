package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumFlag is a string flag restricted to a fixed set of values.
type enumFlag struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(def string, allowed ...string) *enumFlag {
	return &enumFlag{value: def, allowed: allowed}
}

func (e *enumFlag) String() string { return e.value }

func (e *enumFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (expected %s)", s, strings.Join(e.allowed, "|"))
}

func (e *enumFlag) Type() string { return strings.Join(e.allowed, "|") }
