/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generate

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/figmagen/emit"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/internal/logger"
)

// PrunePattern returns the pattern of modules prune may remove, relative to
// the theme directory. Theme modules are only ever written at depth one.
func PrunePattern(lang emit.Lang) string {
	return "*" + lang.Extension()
}

// prune removes files directly in dir matching pattern that are not in keep.
// Subdirectories are left alone. A missing dir is not an error.
func prune(filesystem fs.FileSystem, dir, pattern string, keep map[string]bool) ([]string, error) {
	dir = filepath.Clean(dir)

	var stale []string
	err := iofs.WalkDir(filesystem, dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if filepath.Clean(path) != dir {
				return iofs.SkipDir
			}
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), "/")
		if matched, _ := doublestar.Match(pattern, rel); !matched {
			return nil
		}
		if !keep[filepath.Clean(path)] {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, path := range stale {
		if err := filesystem.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to prune %s: %w", path, err)
		}
		logger.Info("Pruned %s", path)
		removed = append(removed, path)
	}
	return removed, nil
}
