// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package unrar

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// errSymlinkTimes is returned if the modification time of a symlink would be changed.
var errSymlinkTimes = errors.New("cannot change times of a symlink on this platform")

// Chtimes changes the access and modification times of the named file. Symlinks
// are rejected, since os.Chtimes would change the times of the link target.
func (d *TargetDisk) Chtimes(name string, atime, mtime time.Time) error {
	stat, err := os.Lstat(name)
	if err != nil {
		return err
	}
	if stat.Mode()&fs.ModeSymlink != 0 {
		return errSymlinkTimes
	}
	return os.Chtimes(name, atime, mtime)
}
