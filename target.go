// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Target specifies all function that are needed to be implemented to extract contents from an archive
type Target interface {
	// CreateDir creates a single directory at the specified path with the specified mode. If the
	// directory already exists, nothing is done. If the path exists, but is not a directory, an
	// error is returned.
	CreateDir(path string, mode fs.FileMode) error

	// OpenFile opens the file at path for writing. A new file is created with the specified mode.
	// An existing file is truncated if overwrite is true, otherwise an error is returned.
	OpenFile(path string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error)

	// Lstat see docs for os.Lstat. Main purpose is to check for symlinks in the extraction path.
	Lstat(path string) (fs.FileInfo, error)

	// Chtimes see docs for os.Chtimes. Main purpose is to set the modification time of a file.
	// Implementations must not follow a symlink at path.
	Chtimes(path string, atime, mtime time.Time) error

	// Remove see docs for os.Remove. Main purpose is to drop the output of an entry that
	// could not be extracted.
	Remove(path string) error
}

// createDirChain creates each directory dst/segments[0], dst/segments[0]/segments[1], ... in
// order and returns the last one. Existing directories are reused.
//
// If one of the paths is a symlink and config.TraverseSymlinks() returns false, the function
// returns an error. If config.TraverseSymlinks() returns true, a warning is logged and the
// function continues.
func createDirChain(t Target, dst string, segments []string, cfg *Config) (string, error) {
	path := dst
	for i, s := range segments {
		path = filepath.Join(path, s)

		// perform security check to ensure that the path is safe to write to
		if err := securityCheck(t, dst, segments[:i+1], cfg); err != nil {
			return "", err
		}

		if err := t.CreateDir(path, cfg.CustomCreateDirMode()); err != nil {
			return "", fmt.Errorf("cannot create directory %s: %w", path, err)
		}
	}
	return path, nil
}

// openFile ensures the parent directories of the file described by segments exist and
// opens the file for writing.
func openFile(t Target, dst string, segments []string, mode fs.FileMode, cfg *Config) (string, io.WriteCloser, error) {
	dir, err := createDirChain(t, dst, segments[:len(segments)-1], cfg)
	if err != nil {
		return "", nil, err
	}

	// ensure that if the file exist that it is not a symlink
	if err := securityCheck(t, dst, segments, cfg); err != nil {
		return "", nil, err
	}

	path := filepath.Join(dir, segments[len(segments)-1])
	w, err := t.OpenFile(path, mode, cfg.Overwrite())
	if err != nil {
		return "", nil, err
	}
	return path, w, nil
}

// securityCheck checks that the path built from dst and segments stays inside of dst and
// that no existing element below dst is a symlink.
//
// If the path contains a symlink and config.TraverseSymlinks() returns true,
// a warning is logged and the function continues.
//
// If the path contains a symlink and config.TraverseSymlinks() returns false,
// an error is returned.
func securityCheck(t Target, dst string, segments []string, config *Config) error {
	// check if the relative path is local
	rel := filepath.Join(segments...)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("%w: path traversal detected", ErrUnsafePath)
	}

	// check each element in path
	for i := range segments {

		// assemble path
		subPath := filepath.Join(segments[:i+1]...)
		checkPath := filepath.Join(dst, subPath)

		// check for symlink
		isSymlink, err := isSymlink(t, checkPath)
		if err != nil {
			return fmt.Errorf("failed to check symlink: %w", err)
		}
		if isSymlink {
			if config.TraverseSymlinks() {
				config.Logger().Warn("traverse symlink", "sub-path", subPath)
			} else {
				return fmt.Errorf("%w: symlink in path %s", ErrUnsafePath, subPath)
			}
		}
	}

	return nil
}

// isSymlink checks if path is a symlink
//
// The function returns true if the path is a symlink, otherwise false.
func isSymlink(t Target, path string) (bool, error) {
	stat, err := t.Lstat(path)

	// nothing there yet
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check path: %w", err)
	}

	// check if symlink
	return stat.Mode()&os.ModeSymlink == os.ModeSymlink, nil
}
