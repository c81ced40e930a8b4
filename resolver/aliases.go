/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves alias values between variables and enforces the
// scoping rules between shared and theme-specific values.
package resolver

import (
	"errors"
	"fmt"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/token"
)

// Sentinel errors for alias resolution.
var (
	// ErrUnknownAlias indicates an alias references a variable id that does not exist.
	ErrUnknownAlias = errors.New("unknown alias")

	// ErrIllegalScopeReference indicates a shared token references a per-theme variable.
	ErrIllegalScopeReference = errors.New("shared tokens may not depend on theme-specific tokens")
)

// ErrorKind classifies resolution failures.
type ErrorKind int

const (
	// UnknownAlias means the target id is not in the lookup table.
	UnknownAlias ErrorKind = iota
	// IllegalScopeReference means a shared source references a per-theme target.
	IllegalScopeReference
)

// Error is a recoverable alias resolution failure.
type Error struct {
	Kind     ErrorKind
	TargetID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnknownAlias:
		return fmt.Sprintf("could not find variable with id %s", e.TargetID)
	default:
		return fmt.Sprintf("variable %s: %v", e.TargetID, ErrIllegalScopeReference)
	}
}

// Unwrap returns the sentinel error for the failure kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnknownAlias:
		return ErrUnknownAlias
	default:
		return ErrIllegalScopeReference
	}
}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	// IsLocal is true when source and target share a scoping class, so the
	// target lives in the module being emitted. It does not mean "same theme".
	IsLocal bool

	// Path is the target variable's name path.
	Path []string
}

// Resolver resolves alias values against an immutable variable table.
// It is safe for concurrent use.
type Resolver struct {
	lookup map[string]*figma.Variable
}

// New builds a resolver over all variables of an export.
// When ids repeat, the last variable wins.
func New(variables []*figma.Variable) *Resolver {
	lookup := make(map[string]*figma.Variable, len(variables))
	for _, v := range variables {
		lookup[v.ID] = v
	}
	return &Resolver{lookup: lookup}
}

// Variable returns the variable with the given id.
func (r *Resolver) Variable(id string) (*figma.Variable, bool) {
	v, ok := r.lookup[id]
	return v, ok
}

// Resolve resolves alias as referenced from source.
// Failures are *Error values wrapping ErrUnknownAlias or ErrIllegalScopeReference.
func (r *Resolver) Resolve(source *token.Token, alias figma.Alias) (Resolved, error) {
	target, ok := r.lookup[alias.TargetID]
	if !ok {
		return Resolved{}, &Error{Kind: UnknownAlias, TargetID: alias.TargetID}
	}

	isTargetShared := target.IsShared()
	isSourceShared := isSharedOrigin(source.Origin)

	if isSourceShared && !isTargetShared {
		return Resolved{}, &Error{Kind: IllegalScopeReference, TargetID: alias.TargetID}
	}

	return Resolved{
		IsLocal: isSourceShared == isTargetShared,
		Path:    target.NamePath,
	}, nil
}

// isSharedOrigin treats styles as shared and variables by their scope.
func isSharedOrigin(origin token.Origin) bool {
	switch o := origin.(type) {
	case token.VariableOrigin:
		return o.Variable.IsShared()
	default:
		return true
	}
}
