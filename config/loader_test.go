/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"errors"
	"testing"

	"bennypowers.dev/figmagen/internal/mapfs"
	"bennypowers.dev/figmagen/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Input != "./design/*.json" {
		t.Errorf("expected input './design/*.json', got %q", cfg.Input)
	}
	if cfg.ReferenceOutput != "src/tokens/reference.ts" {
		t.Errorf("expected referenceOutput 'src/tokens/reference.ts', got %q", cfg.ReferenceOutput)
	}
	if cfg.ThemeOutputDir != "src/tokens/themes" {
		t.Errorf("expected themeOutputDir 'src/tokens/themes', got %q", cfg.ThemeOutputDir)
	}
	if cfg.Separator != "." {
		t.Errorf("expected separator '.', got %q", cfg.Separator)
	}
	if cfg.ReferenceImportName != "ref" {
		t.Errorf("expected referenceImportName 'ref', got %q", cfg.ReferenceImportName)
	}
	if cfg.IdentifierCase != "camel" || cfg.TypeCase != "pascal" {
		t.Errorf("expected camel/pascal, got %q/%q", cfg.IdentifierCase, cfg.TypeCase)
	}
	if !cfg.Verify || !cfg.Prune {
		t.Errorf("expected verify and prune, got %v/%v", cfg.Verify, cfg.Prune)
	}
	if cfg.Header != nil {
		t.Errorf("expected unset header, got %q", *cfg.Header)
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Input != "figma-export.json" {
		t.Errorf("expected input 'figma-export.json', got %q", cfg.Input)
	}
	if cfg.Lang != "js" {
		t.Errorf("expected lang 'js', got %q", cfg.Lang)
	}
	if !cfg.ExitNonZeroOnError {
		t.Error("expected exitNonZeroOnError")
	}
}

func TestLoad_EmptyHeader(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/empty-header", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Header == nil {
		t.Fatal("expected header to be set")
	}
	if *cfg.Header != "" {
		t.Errorf("expected empty header, got %q", *cfg.Header)
	}

	settings := cfg.Settings()
	if v, ok := settings[KeyHeader]; !ok || v != "" {
		t.Errorf("expected empty header setting, got %v (present: %v)", v, ok)
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/invalid", "/project")

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/export.json", "{}", 0644)

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg != nil {
		t.Errorf("expected nil config when not found, got %+v", cfg)
	}
}

func TestLoadOrDefault_Found(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/json", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg.Lang != "js" {
		t.Errorf("expected lang 'js', got %q", cfg.Lang)
	}
}

func TestLoadOrDefault_Invalid(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/invalid", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}
	if cfg.Input != "" {
		t.Errorf("expected empty input, got %q", cfg.Input)
	}
}

func TestSettings(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/yaml", "/project")
	cfg := LoadOrDefault(mfs, "/project")

	settings := cfg.Settings()

	expected := map[string]any{
		KeyInput:               "./design/*.json",
		KeyReferenceOutput:     "src/tokens/reference.ts",
		KeyThemeOutputDir:      "src/tokens/themes",
		KeySeparator:           ".",
		KeyReferenceImportName: "ref",
		KeyIdentifierCase:      "camel",
		KeyTypeCase:            "pascal",
		KeyVerify:              true,
		KeyPrune:               true,
	}

	if len(settings) != len(expected) {
		t.Errorf("expected %d settings, got %d: %v", len(expected), len(settings), settings)
	}
	for key, want := range expected {
		if got := settings[key]; got != want {
			t.Errorf("setting %s: expected %v, got %v", key, want, got)
		}
	}
	for _, unset := range []string{KeyLang, KeyHeader, KeyExitNonZeroOnError} {
		if _, ok := settings[unset]; ok {
			t.Errorf("expected %s to be unset", unset)
		}
	}
}

func TestExpandInput(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/design/export.json", "{}", 0644)
	mfs.AddFile("/project/design/notes.md", "", 0644)
	mfs.AddFile("/project/exports/a.json", "{}", 0644)
	mfs.AddFile("/project/exports/b.json", "{}", 0644)

	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr error
	}{
		{"plain relative path", "figma.json", "/project/figma.json", nil},
		{"absolute path", "/elsewhere/figma.json", "/elsewhere/figma.json", nil},
		{"single glob match", "design/*.json", "/project/design/export.json", nil},
		{"doublestar match", "**/export.json", "/project/design/export.json", nil},
		{"no match", "design/*.yaml", "", ErrInputNotFound},
		{"ambiguous", "exports/*.json", "", ErrAmbiguousInput},
		{"empty", "", "", ErrNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandInput(mfs, "/project", tt.pattern)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContainsGlob(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"export.json", false},
		{"*.json", true},
		{"export-?.json", true},
		{"[ab].json", true},
		{"{a,b}.json", true},
	}

	for _, tt := range tests {
		if got := containsGlob(tt.pattern); got != tt.want {
			t.Errorf("containsGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}
