/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	fgfs "bennypowers.dev/figmagen/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "figmagen"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// Input expansion errors.
var (
	ErrNoInput        = errors.New("no input file specified")
	ErrInputNotFound  = errors.New("input pattern matched no files")
	ErrAmbiguousInput = errors.New("input pattern matched more than one file")
)

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/figmagen.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem fgfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem fgfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandInput resolves an input path relative to rootDir. A glob must match
// exactly one file; a plain path is returned without checking it exists.
func ExpandInput(filesystem fgfs.FileSystem, rootDir, pattern string) (string, error) {
	if pattern == "" {
		return "", ErrNoInput
	}

	paths, err := expandFilePath(filesystem, rootDir, pattern)
	if err != nil {
		return "", err
	}

	switch len(paths) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, pattern)
	case 1:
		return paths[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %s", ErrAmbiguousInput, pattern, strings.Join(paths, ", "))
	}
}

// expandFilePath expands a single file path which may contain globs.
func expandFilePath(filesystem fgfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem fgfs.FileSystem, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := relativeTo(baseDir, pattern)

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if matchDoublestar(relPattern, relativeTo(baseDir, path)) {
			matches = append(matches, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return matches, nil
}

// relativeTo strips the base directory prefix from p.
func relativeTo(baseDir, p string) string {
	if baseDir == "." {
		return p
	}
	rel := strings.TrimPrefix(p, baseDir)
	return strings.TrimPrefix(rel, string(filepath.Separator))
}

// matchDoublestar provides ** glob matching using the doublestar library.
func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
