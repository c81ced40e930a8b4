/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for figmagen.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/spf13/cobra"

	"bennypowers.dev/figmagen/config"
	"bennypowers.dev/figmagen/emit"
	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/load"
	"bennypowers.dev/figmagen/resolver"
	"bennypowers.dev/figmagen/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [input]",
	Short: "List tokens from a design tool export",
	Long:  `List every token of an export with its theme, kind and value. The input may be a file, a glob matching one file or an http(s) URL; without one, the configured input is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("theme", "", "Filter by theme (use \"shared\" for the shared module)")
	Cmd.Flags().String("kind", "", "Filter by value kind (boolean, number, string, rgb, rgba, alias)")
	Cmd.Flags().String("group", "", "Filter by top-level group")
	Cmd.Flags().StringP("separator", "s", "", "Name separator (default from config or \"/\")")
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

// SharedTheme labels tokens of the shared module.
const SharedTheme = "shared"

type entry struct {
	Theme string `json:"theme"`
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Hex   string `json:"hex,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	themeFilter, _ := cmd.Flags().GetString("theme")
	kindFilter, _ := cmd.Flags().GetString("kind")
	groupFilter, _ := cmd.Flags().GetString("group")
	separator, _ := cmd.Flags().GetString("separator")
	format, _ := cmd.Flags().GetString("format")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")
	if separator == "" {
		separator = cfg.SeparatorOrDefault()
	}

	input := cfg.Input
	if len(args) == 1 {
		input = args[0]
	}

	export, err := load.Export(cmd.Context(), input, load.Options{FS: filesystem, Separator: separator})
	if err != nil {
		return err
	}

	entries := filterEntries(collectEntries(export), themeFilter, kindFilter, groupFilter)

	switch format {
	case "json":
		return outputJSON(cmd.OutOrStdout(), entries)
	case "table":
		return outputTable(cmd.OutOrStdout(), entries)
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

// collectEntries describes every token, sorted by theme with the shared
// module first and by path within a theme.
func collectEntries(export *figma.Export) []entry {
	res := resolver.New(export.Variables)
	tokens := token.Tokenize(export)

	entries := make([]entry, 0, len(tokens))
	for _, tok := range tokens {
		e := entry{
			Theme: tok.Theme,
			Path:  tok.DotPath(),
			Kind:  tok.Value.Kind(),
			Value: figma.Describe(tok.Value),
		}
		if e.Theme == "" {
			e.Theme = SharedTheme
		}
		switch v := tok.Value.(type) {
		case figma.Color:
			e.Value = emit.SerializeColor(v)
			if c, err := csscolorparser.Parse(e.Value); err == nil {
				e.Hex = c.HexString()
			}
		case figma.Alias:
			if target, ok := res.Variable(v.TargetID); ok {
				e.Value = "-> " + strings.Join(target.NamePath, ".")
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Theme != b.Theme {
			if a.Theme == SharedTheme || b.Theme == SharedTheme {
				return a.Theme == SharedTheme
			}
			return a.Theme < b.Theme
		}
		return a.Path < b.Path
	})
	return entries
}

func filterEntries(entries []entry, theme, kind, group string) []entry {
	filtered := make([]entry, 0, len(entries))
	for _, e := range entries {
		if theme != "" && e.Theme != theme {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		if group != "" && strings.SplitN(e.Path, ".", 2)[0] != group {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func outputTable(w io.Writer, entries []entry) error {
	for _, e := range entries {
		value := e.Value
		if e.Hex != "" {
			value += " " + e.Hex
		}
		if _, err := fmt.Fprintf(w, "%-12s %-40s %-8s %s\n", e.Theme, e.Path, e.Kind, value); err != nil {
			return err
		}
	}
	return nil
}

func outputJSON(w io.Writer, entries []entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
