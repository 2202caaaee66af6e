// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
)

// TargetFs extracts into an [afero.Fs]. It is used for in-memory extraction and for
// filesystems other than the local disk.
type TargetFs struct {
	fs afero.Fs
}

// NewTargetMemory creates a target on a new in-memory filesystem.
func NewTargetMemory() *TargetFs {
	return NewTargetFs(afero.NewMemMapFs())
}

// NewTargetFs creates a target on fs.
func NewTargetFs(fs afero.Fs) *TargetFs {
	return &TargetFs{fs: fs}
}

// Fs returns the underlying filesystem.
func (m *TargetFs) Fs() afero.Fs {
	return m.fs
}

// CreateDir creates a directory at the specified path with the specified mode. If the
// directory already exists, nothing is done.
func (m *TargetFs) CreateDir(path string, mode fs.FileMode) error {
	err := m.fs.Mkdir(path, mode.Perm())
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("failed to create directory (%w)", err)
	}

	// reuse existing directory
	stat, serr := m.Lstat(path)
	if serr != nil {
		return fmt.Errorf("failed to create directory (%w)", serr)
	}
	if !stat.IsDir() {
		return fmt.Errorf("failed to create directory (%w)", err)
	}
	return nil
}

// OpenFile opens the file at path for writing. An existing file is truncated if overwrite
// is true, otherwise an error is returned.
func (m *TargetFs) OpenFile(path string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	if !overwrite {
		if _, err := m.Lstat(path); err == nil {
			return nil, fmt.Errorf("failed to create file: %w", &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist})
		}
	}

	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// Lstat returns the FileInfo structure describing the named file without following
// symlinks, if the filesystem supports it.
func (m *TargetFs) Lstat(path string) (fs.FileInfo, error) {
	if l, ok := m.fs.(afero.Lstater); ok {
		stat, _, err := l.LstatIfPossible(path)
		return stat, err
	}
	return m.fs.Stat(path)
}

// Chtimes changes the access and modification times of the named file.
func (m *TargetFs) Chtimes(path string, atime, mtime time.Time) error {
	return m.fs.Chtimes(path, atime, mtime)
}

// Remove removes the named file or empty directory.
func (m *TargetFs) Remove(path string) error {
	return m.fs.Remove(path)
}
