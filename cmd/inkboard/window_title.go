package main

import (
	"strings"

	"github.com/example/inkboard/internal/ui"
)

// titleOptions feeds windowTitle. Zero fields are left out of the title.
type titleOptions struct {
	File       string
	Mode       string
	Detail     string
	LastSaved  string
	Background string
	Extras     []string
}

// windowTitle assembles the window caption: the program name, then the open
// file, tool and board detail, then build and state annotations. Segments
// are trimmed and empty ones dropped.
func windowTitle(opts titleOptions) string {
	parts := []string{ui.ProgramTitle}
	add := func(prefix, value string) {
		value = strings.TrimSpace(value)
		if value != "" {
			parts = append(parts, prefix+value)
		}
	}

	add("", opts.File)
	add("", opts.Mode)
	add("", opts.Detail)
	add("last saved ", opts.LastSaved)
	add("v", version)
	add("commit ", commit)
	add("", date)
	add("background ", opts.Background)
	for _, extra := range opts.Extras {
		add("", extra)
	}

	return strings.Join(parts, " - ")
}
