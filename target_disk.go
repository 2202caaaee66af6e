// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// TargetDisk is the struct type that holds all information for interacting with the filesystem
type TargetDisk struct{}

// NewTargetDisk creates a new target for the local filesystem.
func NewTargetDisk() *TargetDisk {
	// create object
	td := &TargetDisk{}
	return td
}

// CreateDir creates a directory at the specified path with the specified mode. If the directory already
// exists, nothing is done.
func (d *TargetDisk) CreateDir(path string, mode fs.FileMode) error {

	// create dir
	err := os.Mkdir(path, mode.Perm())
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("failed to create directory (%w)", err)
	}

	// reuse existing directory
	stat, serr := os.Lstat(path)
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
func (d *TargetDisk) OpenFile(path string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	// create dst file
	f, err := os.OpenFile(path, flags, mode.Perm())
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}

// Lstat returns the FileInfo structure describing the named file.
// If there is an error, it will be of type *PathError.
func (d *TargetDisk) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Remove removes the named file or empty directory.
func (d *TargetDisk) Remove(name string) error {
	return os.Remove(name)
}
