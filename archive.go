// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"io"
	"io/fs"
	"time"
)

// Archive is an opened archive handle. The [Extractor] reads entries in archive order
// and closes the handle exactly once.
type Archive interface {
	// IsEncrypted returns true if the archive as a whole is encrypted.
	IsEncrypted() bool

	// Next returns the next entry. It returns io.EOF if there are no more entries.
	// An entry is only valid until the following call to Next.
	Next() (Entry, error)

	// ExtractInto writes the decompressed data of e to w.
	ExtractInto(e Entry, w io.Writer) error

	// Close releases the handle.
	Close() error
}

// Entry is the header of a single archive member. Names use a backslash as directory
// separator.
type Entry interface {
	// NameLegacy returns the name decoded from the legacy (non-Unicode) representation.
	NameLegacy() string

	// NameWide returns the name decoded from the Unicode representation. The second
	// value reports if the header carries one.
	NameWide() (string, bool)

	// IsUnicode returns true if the header carries a Unicode name.
	IsUnicode() bool

	// IsDirectory returns true if the entry is a directory.
	IsDirectory() bool

	// IsEncrypted returns true if the entry data is encrypted.
	IsEncrypted() bool

	// IsFileHeader returns true if the entry was read from a file header record.
	IsFileHeader() bool
}

// OpenFunc opens the archive at path.
type OpenFunc func(path string) (Archive, error)

// optional capabilities of entries and archives

type symlinkEntry interface {
	IsSymlink() bool
}

type modTimeEntry interface {
	ModTime() time.Time
}

type modeEntry interface {
	Mode() fs.FileMode
}

type sizedEntry interface {
	Size() int64
}

type sizedArchive interface {
	Size() int64
}
