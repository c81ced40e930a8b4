/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package naming maps token name segments to TypeScript identifiers, property
// keys and accessor chains.
package naming

import (
	"errors"
	"fmt"
	"regexp"

	"bennypowers.dev/figmagen/tsast"
)

// DefaultReferenceImportName is the namespace binding of the shared module.
const DefaultReferenceImportName = "reference"

// ErrInvalidIdentifier indicates a name that cannot be used as an identifier
// after transformation. It aborts the run.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_]\w*$`)

// IsValidIdentifier reports whether name can be emitted as a bare identifier.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Options configures a Convention.
type Options struct {
	// ReferenceImportName is the namespace binding of the shared module.
	// Defaults to DefaultReferenceImportName.
	ReferenceImportName string

	// Transform is applied to every name segment. Nil means identity.
	Transform Transform

	// TypeTransform is applied to type alias names. Nil falls back to Transform.
	TypeTransform Transform
}

// Convention is an immutable naming policy. It is safe for concurrent use.
type Convention struct {
	referenceImportName string
	transform           Transform
	typeTransform       Transform
}

// New creates a convention. The reference import name must be a valid
// identifier after transformation.
func New(opts Options) (*Convention, error) {
	c := &Convention{
		referenceImportName: opts.ReferenceImportName,
		transform:           opts.Transform,
		typeTransform:       opts.TypeTransform,
	}
	if c.referenceImportName == "" {
		c.referenceImportName = DefaultReferenceImportName
	}
	if c.transform == nil {
		c.transform = None
	}
	if c.typeTransform == nil {
		c.typeTransform = c.transform
	}
	if _, err := c.Identifier(c.referenceImportName); err != nil {
		return nil, fmt.Errorf("reference import name: %w", err)
	}
	return c, nil
}

// Default returns the identity convention with the default reference import name.
func Default() *Convention {
	c, _ := New(Options{})
	return c
}

// ReferenceImportName returns the untransformed namespace binding of the shared module.
func (c *Convention) ReferenceImportName() string {
	return c.referenceImportName
}

// Accessor returns a property key for name: a bare identifier when the
// transformed name is valid, a string literal otherwise.
func (c *Convention) Accessor(name string) tsast.PropertyName {
	name = c.transform(name)
	if IsValidIdentifier(name) {
		return &tsast.Identifier{Name: name}
	}
	return &tsast.StringLiteral{Value: name}
}

// AccessorChain returns the member expression reaching names[1:] from the
// root names[0]. The root must be a valid identifier after transformation;
// later segments use property access when valid, element access otherwise.
func (c *Convention) AccessorChain(names []string) (tsast.Expression, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty accessor chain", ErrInvalidIdentifier)
	}

	root, err := c.Identifier(names[0])
	if err != nil {
		return nil, err
	}

	var expr tsast.Expression = root
	for _, name := range names[1:] {
		name = c.transform(name)
		if IsValidIdentifier(name) {
			expr = &tsast.PropertyAccess{Object: expr, Name: name}
		} else {
			expr = &tsast.ElementAccess{Object: expr, Index: &tsast.StringLiteral{Value: name}}
		}
	}
	return expr, nil
}

// Identifier transforms name and requires the result to be a valid identifier.
func (c *Convention) Identifier(name string) (*tsast.Identifier, error) {
	return assertIdentifier(c.transform(name))
}

// TypeName transforms name with the type transform and requires the result
// to be a valid identifier.
func (c *Convention) TypeName(name string) (*tsast.Identifier, error) {
	return assertIdentifier(c.typeTransform(name))
}

func assertIdentifier(name string) (*tsast.Identifier, error) {
	if !IsValidIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return &tsast.Identifier{Name: name}, nil
}
