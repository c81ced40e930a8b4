/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory fs.FileSystem. Tests use it as a
// fixture tree and the MCP server uses it as a sink for dry runs.
package mapfs

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
)

var errNotDir = errors.New("not a directory")

// MapFileSystem is an fstest.MapFS guarded for concurrent use. Directories
// are implied by file paths; MkdirAll records them explicitly.
type MapFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS
}

// New creates an empty in-memory filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{files: make(fstest.MapFS)}
}

// AddFile adds a fixture file.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[clean(p)] = &fstest.MapFile{Data: []byte(content), Mode: mode}
}

func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.files.Open(clean(name))
}

func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.files.ReadDir(clean(name))
}

func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.files.ReadFile(clean(name))
}

// WriteFile stores a copy of data. Parent directories are implied, but
// writing below an existing file fails.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = clean(name)
	if parent := mfs.fileAncestorLocked(name); parent != "" {
		return &fs.PathError{Op: "open", Path: name, Err: errNotDir}
	}
	if f, ok := mfs.files[name]; ok && f.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	}
	mfs.files[name] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm}
	return nil
}

func (mfs *MapFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = clean(p)
	if p == "." {
		return nil
	}
	if f, ok := mfs.files[p]; ok && !f.Mode.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: p, Err: errNotDir}
	}
	if parent := mfs.fileAncestorLocked(p); parent != "" {
		return &fs.PathError{Op: "mkdir", Path: parent, Err: errNotDir}
	}
	if _, ok := mfs.files[p]; !ok {
		mfs.files[p] = &fstest.MapFile{Mode: fs.ModeDir | perm.Perm()}
	}
	return nil
}

// Remove deletes a file or an empty directory.
func (mfs *MapFileSystem) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = clean(name)
	if _, ok := mfs.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	prefix := name + "/"
	for p := range mfs.files {
		if strings.HasPrefix(p, prefix) {
			return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
		}
	}
	delete(mfs.files, name)
	return nil
}

func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	_, err := mfs.files.Stat(clean(p))
	return err == nil
}

// fileAncestorLocked returns the first ancestor of p stored as a regular file.
func (mfs *MapFileSystem) fileAncestorLocked(p string) string {
	for dir := path.Dir(p); dir != "."; dir = path.Dir(dir) {
		if f, ok := mfs.files[dir]; ok && !f.Mode.IsDir() {
			return dir
		}
	}
	return ""
}

// clean maps absolute and relative paths onto the same fs.FS key.
func clean(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}
