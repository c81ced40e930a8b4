/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command, which serves code generation to
// Model Context Protocol clients over stdio.
package mcp

import (
	"context"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/figmagen/config"
	"bennypowers.dev/figmagen/generate"
	"bennypowers.dev/figmagen/internal/logger"
	"bennypowers.dev/figmagen/internal/mapfs"
	"bennypowers.dev/figmagen/internal/version"
	"bennypowers.dev/figmagen/parser"
	"bennypowers.dev/figmagen/validator"
)

// ToolName is the name of the generation tool.
const ToolName = "generate_modules"

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve code generation over the Model Context Protocol",
	Long:  `Run an MCP server on stdio exposing the ` + ToolName + ` tool, which returns generated modules without writing them.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)
	return NewServer().Run(cmd.Context(), &mcp.StdioTransport{})
}

// NewServer creates an MCP server with the generation tool registered.
func NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: version.Name, Version: version.Get()}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Generate TypeScript or JavaScript modules from a design tool export: one module per theme plus a shared reference module.",
	}, generateModules)
	return server
}

// GenerateInput is the argument of the generation tool.
type GenerateInput struct {
	Source              string  `json:"source" jsonschema:"the export document as JSON or YAML"`
	Separator           string  `json:"separator,omitempty" jsonschema:"name separator, default /"`
	ReferenceOutput     string  `json:"referenceOutput,omitempty" jsonschema:"shared module path"`
	ThemeOutputDir      string  `json:"themeOutputDir,omitempty" jsonschema:"theme module directory"`
	Header              *string `json:"header,omitempty" jsonschema:"header prepended to every module"`
	ReferenceImportName string  `json:"referenceImportName,omitempty" jsonschema:"namespace binding of the shared module"`
	IdentifierCase      string  `json:"identifierCase,omitempty" jsonschema:"identifier transform: none, camel, pascal, snake or constant"`
	TypeCase            string  `json:"typeCase,omitempty" jsonschema:"type alias transform, defaults to identifierCase"`
	Lang                string  `json:"lang,omitempty" jsonschema:"output language: ts or js"`
	Verify              bool    `json:"verify,omitempty" jsonschema:"syntax check every module"`
}

// Module is one generated module.
type Module struct {
	Path   string   `json:"path"`
	Theme  string   `json:"theme,omitempty"`
	Source string   `json:"source"`
	Errors []string `json:"errors,omitempty"`
}

// GenerateOutput is the result of the generation tool.
type GenerateOutput struct {
	Modules []Module `json:"modules"`
	Summary string   `json:"summary"`
}

func (in GenerateInput) config() *config.Config {
	return &config.Config{
		ReferenceOutput:     in.ReferenceOutput,
		ThemeOutputDir:      in.ThemeOutputDir,
		Separator:           in.Separator,
		Header:              in.Header,
		ReferenceImportName: in.ReferenceImportName,
		IdentifierCase:      in.IdentifierCase,
		TypeCase:            in.TypeCase,
		Lang:                in.Lang,
		Verify:              in.Verify,
	}
}

func generateModules(ctx context.Context, req *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
	cfg := in.config()

	opts, err := cfg.GenerateOptions()
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	opts.DryRun = true
	opts.Stdout = io.Discard
	opts.FS = mapfs.New()

	root, err := parser.NewDocumentParser().Parse([]byte(in.Source))
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	export, err := validator.Export(root, validator.Options{
		NameParser: parser.SeparatorNameParser(cfg.SeparatorOrDefault()),
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	report, err := generate.Run(ctx, export, opts)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	out := GenerateOutput{Summary: report.Summary(), Modules: make([]Module, 0, len(report.Files))}
	for _, f := range report.Files {
		out.Modules = append(out.Modules, Module{
			Path:   f.Path,
			Theme:  f.Theme,
			Source: f.Source,
			Errors: f.Errors,
		})
	}
	return nil, out, nil
}
