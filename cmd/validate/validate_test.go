/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"strings"
	"testing"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/internal/mapfs"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/testutil"
)

func TestValidateFile_Fixture(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("input.json", string(testutil.LoadFixtureFile(t, "generate/input.json")), 0644)

	export, problems, err := validateFile(mfs, "input.json", "/", naming.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export == nil {
		t.Fatal("expected export")
	}

	want := []string{"dark: surface.raised: could not find variable with id 9:9"}
	if len(problems) != len(want) || problems[0] != want[0] {
		t.Errorf("expected %v, got %v", want, problems)
	}
}

func TestValidateFile_ShapeErrors(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("bad.json", `{"variables": [{"id": "1", "name": "a", "valuesByMode": {}}], "textStyles": [], "effectStyles": []}`, 0644)

	export, problems, err := validateFile(mfs, "bad.json", "/", naming.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export != nil {
		t.Error("expected no export for invalid input")
	}
	if len(problems) == 0 {
		t.Fatal("expected problems")
	}
	if !strings.HasPrefix(problems[0], "bad.json") {
		t.Errorf("expected problem to name the file, got %q", problems[0])
	}
}

func TestValidateFile_Unreadable(t *testing.T) {
	if _, _, err := validateFile(mapfs.New(), "missing.json", "/", naming.Default()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCheckExport(t *testing.T) {
	perTheme := func(id string, path []string, light, dark figma.Value) *figma.Variable {
		v, err := figma.NewPerThemeVariable(id, path, []figma.ThemeValue{
			{Theme: "light", Value: light},
			{Theme: "dark", Value: dark},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}

	tests := []struct {
		name   string
		export *figma.Export
		want   []string
	}{
		{
			name: "clean",
			export: &figma.Export{Variables: []*figma.Variable{
				figma.NewSharedVariable("1", []string{"color", "bg"}, figma.RGB(1, 1, 1)),
				figma.NewSharedVariable("2", []string{"color", "fg"}, figma.Alias{TargetID: "1"}),
			}},
		},
		{
			name: "shared depends on theme",
			export: &figma.Export{Variables: []*figma.Variable{
				perTheme("1", []string{"surface", "base"}, figma.Number{V: 1}, figma.Number{V: 2}),
				figma.NewSharedVariable("2", []string{"color", "fg"}, figma.Alias{TargetID: "1"}),
			}},
			want: []string{"color.fg: variable 1: shared tokens may not depend on theme-specific tokens"},
		},
		{
			name: "cycle",
			export: &figma.Export{Variables: []*figma.Variable{
				figma.NewSharedVariable("a", []string{"x", "a"}, figma.Alias{TargetID: "b"}),
				figma.NewSharedVariable("b", []string{"x", "b"}, figma.Alias{TargetID: "a"}),
			}},
			want: []string{"circular reference detected: [a b a]"},
		},
		{
			name: "aliases across themes",
			export: &figma.Export{Variables: []*figma.Variable{
				perTheme("a", []string{"x", "a"}, figma.Alias{TargetID: "b"}, figma.Number{V: 1}),
				perTheme("b", []string{"x", "b"}, figma.Number{V: 2}, figma.Alias{TargetID: "a"}),
			}},
		},
		{
			name: "invalid identifier",
			export: &figma.Export{Variables: []*figma.Variable{
				figma.NewSharedVariable("1", []string{"font-size", "sm"}, figma.Number{V: 12}),
				figma.NewSharedVariable("2", []string{"font-size", "md"}, figma.Number{V: 14}),
			}},
			want: []string{`font-size.sm: invalid identifier: "font-size"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkExport(tt.export, naming.Default())
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("problem %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
