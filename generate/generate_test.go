/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generate_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/figmagen/emit"
	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/generate"
	"bennypowers.dev/figmagen/internal/logger"
	"bennypowers.dev/figmagen/internal/mapfs"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/testutil"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fixture returns an in-memory filesystem holding the fixture export and
// the export loaded from it.
func fixture(t *testing.T) (*mapfs.MapFileSystem, *figma.Export) {
	t.Helper()
	mfs := mapfs.New()
	mfs.AddFile("input.json", string(testutil.LoadFixtureFile(t, "generate/input.json")), 0644)

	export, err := generate.LoadExport(mfs, "input.json", "/")
	require.NoError(t, err)
	return mfs, export
}

func readFile(t *testing.T, mfs *mapfs.MapFileSystem, path string) []byte {
	t.Helper()
	data, err := mfs.ReadFile(path)
	require.NoError(t, err, path)
	return data
}

func TestRun_WritesModules(t *testing.T) {
	mfs, export := fixture(t)

	report, err := generate.Run(context.Background(), export, generate.Options{
		Header: generate.DefaultHeader,
		FS:     mfs,
	})
	require.NoError(t, err)

	require.Len(t, report.Files, 3)
	assert.Equal(t, "generated/reference.ts", report.Files[0].Path)
	assert.True(t, report.Files[0].Shared())
	assert.Equal(t, "generated/themes/light.ts", report.Files[1].Path)
	assert.Equal(t, "light", report.Files[1].Theme)
	assert.Equal(t, "generated/themes/dark.ts", report.Files[2].Path)

	testutil.AssertGolden(t, "generate/reference.ts", readFile(t, mfs, "generated/reference.ts"))
	testutil.AssertGolden(t, "generate/themes/light.ts", readFile(t, mfs, "generated/themes/light.ts"))
	testutil.AssertGolden(t, "generate/themes/dark.ts", readFile(t, mfs, "generated/themes/dark.ts"))

	assert.Equal(t, [][]string{{"shadow", "sm", "type"}, {"shadow", "sm", "visible"}}, report.Dropped)
	assert.Nil(t, report.Cycle)
}

func TestRun_ReportsAliasErrorsPerFile(t *testing.T) {
	mfs, export := fixture(t)

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mfs})
	require.NoError(t, err)

	assert.True(t, report.HasErrors())
	assert.Empty(t, report.Files[0].Errors)
	assert.Empty(t, report.Files[1].Errors)
	assert.Equal(t, []string{"Skipped alias at surface.raised: could not find variable with id 9:9"}, report.Files[2].Errors)
	assert.Equal(t, "Errors in generated/themes/dark.ts:\n #1 Skipped alias at surface.raised: could not find variable with id 9:9", report.Summary())
}

func TestRun_Idempotent(t *testing.T) {
	mfs, export := fixture(t)
	opts := generate.Options{Header: generate.DefaultHeader, FS: mfs}

	first, err := generate.Run(context.Background(), export, opts)
	require.NoError(t, err)
	firstDark := readFile(t, mfs, "generated/themes/dark.ts")

	second, err := generate.Run(context.Background(), export, opts)
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].Source, second.Files[i].Source, first.Files[i].Path)
	}
	assert.Equal(t, firstDark, readFile(t, mfs, "generated/themes/dark.ts"))
}

func TestRun_DryRun(t *testing.T) {
	mfs, export := fixture(t)
	var out bytes.Buffer

	_, err := generate.Run(context.Background(), export, generate.Options{
		FS:     mfs,
		DryRun: true,
		Stdout: &out,
	})
	require.NoError(t, err)

	assert.False(t, mfs.Exists("generated"))
	assert.Contains(t, out.String(), "==> generated/reference.ts <==\n")
	assert.Contains(t, out.String(), "==> generated/themes/dark.ts <==\n")
	assert.Contains(t, out.String(), "export const space = { gutter: 16 };")
}

func TestRun_Prune(t *testing.T) {
	mfs, export := fixture(t)
	mfs.AddFile("generated/themes/stale.ts", "export const old = 1;\n", 0644)
	mfs.AddFile("generated/themes/nested/old.ts", "export const old = 1;\n", 0644)
	mfs.AddFile("generated/themes/helper.js", "export const helper = 1;\n", 0644)
	mfs.AddFile("generated/themes/notes.md", "# notes\n", 0644)

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mfs, Prune: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"generated/themes/stale.ts"}, report.Pruned)
	assert.False(t, mfs.Exists("generated/themes/stale.ts"))
	assert.True(t, mfs.Exists("generated/themes/nested/old.ts"))
	assert.True(t, mfs.Exists("generated/themes/helper.js"))
	assert.True(t, mfs.Exists("generated/themes/notes.md"))
	assert.True(t, mfs.Exists("generated/themes/light.ts"))
	assert.True(t, mfs.Exists("generated/themes/dark.ts"))
}

func TestRun_PruneOnlyTopLevelModulesOfLang(t *testing.T) {
	mfs, export := fixture(t)
	mfs.AddFile("src/lib/util.js", "export const util = 1;\n", 0644)
	mfs.AddFile("src/types.ts", "export type T = number;\n", 0644)
	mfs.AddFile("src/retired.js", "export const old = 1;\n", 0644)

	report, err := generate.Run(context.Background(), export, generate.Options{
		FS:                  mfs,
		Lang:                emit.LangJS,
		ReferenceOutputPath: "src/reference.js",
		ThemeOutputDir:      "src",
		Prune:               true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/retired.js"}, report.Pruned)
	assert.True(t, mfs.Exists("src/reference.js"))
	assert.True(t, mfs.Exists("src/light.js"))
	assert.True(t, mfs.Exists("src/lib/util.js"))
	assert.True(t, mfs.Exists("src/types.ts"))
}

func TestPrunePattern(t *testing.T) {
	assert.Equal(t, "*.ts", generate.PrunePattern(emit.LangTS))
	assert.Equal(t, "*.js", generate.PrunePattern(emit.LangJS))
}

func TestRun_WithoutPruneKeepsStaleModules(t *testing.T) {
	mfs, export := fixture(t)
	mfs.AddFile("generated/themes/stale.ts", "export const old = 1;\n", 0644)

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mfs})
	require.NoError(t, err)

	assert.Empty(t, report.Pruned)
	assert.True(t, mfs.Exists("generated/themes/stale.ts"))
}

func TestRun_Verify(t *testing.T) {
	mfs, export := fixture(t)

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mfs, Verify: true})
	require.NoError(t, err)

	for _, file := range report.Files {
		for _, e := range file.Errors {
			assert.NotContains(t, e, "Failed to verify", file.Path)
		}
	}
}

func TestRun_JavaScript(t *testing.T) {
	mfs, export := fixture(t)

	report, err := generate.Run(context.Background(), export, generate.Options{
		FS:                  mfs,
		Lang:                emit.LangJS,
		ReferenceOutputPath: "out/reference.js",
		ThemeOutputDir:      "out/themes",
		Verify:              true,
	})
	require.NoError(t, err)

	assert.Equal(t, "out/themes/light.js", report.Files[1].Path)
	light := string(readFile(t, mfs, "out/themes/light.js"))
	assert.Contains(t, light, `import * as reference from "../reference";`)
	assert.NotContains(t, light, "export type")
	assert.Equal(t, []string{"Skipped alias at surface.raised: could not find variable with id 9:9"}, report.Files[2].Errors)
}

func TestRun_JavaScriptDefaultReferencePath(t *testing.T) {
	mfs, export := fixture(t)

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mfs, Lang: emit.LangJS})
	require.NoError(t, err)

	assert.Equal(t, "generated/reference.js", report.Files[0].Path)
	assert.True(t, mfs.Exists("generated/reference.js"))
}

func TestRun_InvalidIdentifierAbortsRun(t *testing.T) {
	mfs := mapfs.New()
	export := &figma.Export{Variables: []*figma.Variable{
		figma.NewSharedVariable("1", []string{"font-size", "sm"}, figma.Number{V: 12}),
	}}

	_, err := generate.Run(context.Background(), export, generate.Options{FS: mfs})
	assert.ErrorIs(t, err, naming.ErrInvalidIdentifier)
	assert.False(t, mfs.Exists("generated"))
}

func TestRun_TransformFixesIdentifiers(t *testing.T) {
	mfs := mapfs.New()
	export := &figma.Export{Variables: []*figma.Variable{
		figma.NewSharedVariable("1", []string{"font-size", "sm"}, figma.Number{V: 12}),
	}}
	convention, err := naming.New(naming.Options{Transform: naming.CamelCase})
	require.NoError(t, err)

	_, err = generate.Run(context.Background(), export, generate.Options{FS: mfs, Naming: convention})
	require.NoError(t, err)
	assert.Contains(t, string(readFile(t, mfs, "generated/reference.ts")), "export const fontSize = { sm: 12 };")
}

func TestRun_OutputCollision(t *testing.T) {
	themed, err := figma.NewPerThemeVariable("1", []string{"x"}, []figma.ThemeValue{
		{Theme: "brand/dark", Value: figma.Number{V: 1}},
		{Theme: "brand_dark", Value: figma.Number{V: 2}},
	})
	require.NoError(t, err)

	_, err = generate.Run(context.Background(), &figma.Export{Variables: []*figma.Variable{themed}}, generate.Options{FS: mapfs.New()})
	assert.ErrorIs(t, err, generate.ErrOutputCollision)
}

func TestRun_ThemeNamesAreSanitized(t *testing.T) {
	themed, err := figma.NewPerThemeVariable("1", []string{"x"}, []figma.ThemeValue{
		{Theme: "../escape", Value: figma.Number{V: 1}},
		{Theme: "High Contrast", Value: figma.Number{V: 2}},
	})
	require.NoError(t, err)
	mfs := mapfs.New()

	report, err := generate.Run(context.Background(), &figma.Export{Variables: []*figma.Variable{themed}}, generate.Options{FS: mfs})
	require.NoError(t, err)

	assert.Equal(t, "generated/themes/__escape.ts", report.Files[1].Path)
	assert.Equal(t, "generated/themes/High_Contrast.ts", report.Files[2].Path)
}

func TestRun_SharedModuleAlwaysWritten(t *testing.T) {
	themed, err := figma.NewPerThemeVariable("1", []string{"x"}, []figma.ThemeValue{
		{Theme: "a", Value: figma.Number{V: 1}},
		{Theme: "b", Value: figma.Number{V: 2}},
	})
	require.NoError(t, err)
	mfs := mapfs.New()

	_, err = generate.Run(context.Background(), &figma.Export{Variables: []*figma.Variable{themed}}, generate.Options{
		FS:     mfs,
		Header: generate.DefaultHeader,
	})
	require.NoError(t, err)

	assert.Equal(t, generate.DefaultHeader, string(readFile(t, mfs, "generated/reference.ts")))
}

func TestRun_Cancelled(t *testing.T) {
	mfs, export := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generate.Run(ctx, export, generate.Options{FS: mfs})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, mfs.Exists("generated"))
}

func TestRun_ReportsCycles(t *testing.T) {
	export := &figma.Export{Variables: []*figma.Variable{
		figma.NewSharedVariable("a", []string{"x", "a"}, figma.Alias{TargetID: "b"}),
		figma.NewSharedVariable("b", []string{"x", "b"}, figma.Alias{TargetID: "a"}),
	}}

	report, err := generate.Run(context.Background(), export, generate.Options{FS: mapfs.New()})
	require.NoError(t, err)
	require.NotNil(t, report.Cycle)
	assert.Equal(t, []string{"a", "b", "a"}, report.Cycle.Path)
}

func TestRun_CrossThemeAliasesAreNotACycle(t *testing.T) {
	a, err := figma.NewPerThemeVariable("a", []string{"x", "a"}, []figma.ThemeValue{
		{Theme: "light", Value: figma.Alias{TargetID: "b"}},
		{Theme: "dark", Value: figma.Number{V: 1}},
	})
	require.NoError(t, err)
	b, err := figma.NewPerThemeVariable("b", []string{"x", "b"}, []figma.ThemeValue{
		{Theme: "light", Value: figma.Number{V: 2}},
		{Theme: "dark", Value: figma.Alias{TargetID: "a"}},
	})
	require.NoError(t, err)

	report, err := generate.Run(context.Background(), &figma.Export{Variables: []*figma.Variable{a, b}}, generate.Options{FS: mapfs.New()})
	require.NoError(t, err)
	assert.Nil(t, report.Cycle)
	assert.False(t, report.HasErrors())
}

func TestReport_Summary(t *testing.T) {
	clean := &generate.Report{Files: []generate.FileReport{{Path: "a.ts"}}}
	assert.False(t, clean.HasErrors())
	assert.Equal(t, "Code generation finished without errors", clean.Summary())

	failed := &generate.Report{Files: []generate.FileReport{
		{Path: "a.ts", Errors: []string{"first", "second"}},
		{Path: "b.ts"},
		{Path: "c.ts", Errors: []string{"third"}},
	}}
	assert.Equal(t, "Errors in a.ts:\n #1 first\n #2 second\nErrors in c.ts:\n #1 third", failed.Summary())
}

func TestLoadExport_InvalidInput(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("bad.json", `{"variables": [{"id": "1", "name": "x", "collection": "c", "valuesByMode": {}}], "textStyles": [], "effectStyles": []}`, 0644)

	_, err := generate.LoadExport(mfs, "bad.json", "/")
	assert.Error(t, err)
}
