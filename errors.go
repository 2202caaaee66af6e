// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxFilesExceeded indicates that the maximum number of files is exceeded.
	ErrMaxFilesExceeded = errors.New("maximum files exceeded")

	// ErrMaxExtractionSizeExceeded indicates that the maximum size is exceeded.
	ErrMaxExtractionSizeExceeded = errors.New("maximum extraction size exceeded")

	// ErrMaxInputSizeExceeded indicates that the archive is larger than the configured maximum input size.
	ErrMaxInputSizeExceeded = errors.New("maximum input size exceeded")

	// ErrUnsafePath indicates that an entry name resolves to a path outside of the destination.
	ErrUnsafePath = errors.New("unsafe path")

	// ErrUnsupportedFile indicates that an entry is of a type that cannot be extracted, e.g. a symlink.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrNilEntry indicates that the archive returned no entry and no error.
	ErrNilEntry = errors.New("archive returned nil entry")
)

// OpenError is returned if the archive cannot be opened. Nothing has been extracted when
// it is returned.
type OpenError struct {
	// Path is the archive location
	Path string

	// Err is the cause
	Err error
}

// Error returns the error message.
func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open archive %s: %s", e.Path, e.Err)
}

// Unwrap returns the cause.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned if an output cannot be created or the data of an entry
// cannot be extracted. Entries processed before the failing one remain on disk.
type ExtractionError struct {
	// Entry is the name of the failing entry as stored in the archive
	Entry string

	// Err is the cause
	Err error
}

// Error returns the error message.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract %s: %s", e.Entry, e.Err)
}

// Unwrap returns the cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
