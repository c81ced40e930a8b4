/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma

import "errors"

// Sentinel errors for export model construction.
var (
	// ErrNoThemeValues indicates a per-theme variable was built without any theme entries.
	ErrNoThemeValues = errors.New("a variable must have at least one value")

	// ErrDuplicateTheme indicates a per-theme variable lists the same theme twice.
	ErrDuplicateTheme = errors.New("duplicate theme value")

	// ErrEmptyName indicates a record had no usable name path.
	ErrEmptyName = errors.New("empty name path")
)
