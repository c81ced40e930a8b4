/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generate

import (
	"fmt"
	"strings"

	"bennypowers.dev/figmagen/resolver"
	"bennypowers.dev/figmagen/token"
)

// FileReport describes one generated module.
type FileReport struct {
	// Path is the output path.
	Path string

	// Theme is the theme name, empty for the shared module.
	Theme string

	// Source is the printed module including the header.
	Source string

	// Errors are the recoverable failures for this file, in order.
	Errors []string

	// Overwrites are the token collisions resolved by last-write-wins.
	Overwrites []token.Overwrite
}

// Shared reports whether this is the shared reference module.
func (f FileReport) Shared() bool {
	return f.Theme == ""
}

// Report describes a run.
type Report struct {
	Files []FileReport

	// Pruned lists stale modules removed from the theme directory.
	Pruned []string

	// Dropped lists style properties left out by tokenization.
	Dropped [][]string

	// Cycle is the first alias cycle found within one theme, if any.
	Cycle *resolver.Cycle
}

// HasErrors reports whether any file has errors.
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if len(f.Errors) > 0 {
			return true
		}
	}
	return false
}

// Summary lists the errors of every file, numbered per file, or reports that
// generation finished cleanly.
func (r *Report) Summary() string {
	var parts []string
	for _, f := range r.Files {
		if len(f.Errors) == 0 {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Errors in %s:", f.Path)
		for n, e := range f.Errors {
			fmt.Fprintf(&sb, "\n #%d %s", n+1, e)
		}
		parts = append(parts, sb.String())
	}
	if len(parts) == 0 {
		return "Code generation finished without errors"
	}
	return strings.Join(parts, "\n")
}
