/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides the filesystem figmagen reads exports and config from
// and writes generated modules to.
package fs

import (
	"io/fs"
	"os"
)

// FileSystem is the set of operations figmagen performs on disk. It is an
// fs.ReadDirFS so that config discovery and pruning can walk it.
type FileSystem interface {
	fs.ReadDirFS

	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Exists(path string) bool
}

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a filesystem backed by the os package.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadDir reads the named directory and returns its entries.
func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (f *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (f *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove deletes a stale module.
func (f *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// Exists reports whether path exists, following symlinks.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
