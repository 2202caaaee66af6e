// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"io/fs"
	"time"
)

// Host operating systems recorded in file headers.
const (
	HostMSDOS   = 0
	HostOS2     = 1
	HostWindows = 2
	HostUnix    = 3
	HostMacOS   = 4
	HostBeOS    = 5
	HostUnknown = 0xff
)

// Entry is a single file or directory record of an archive.
//
// The RAR 1.5 format stores names with a backslash as directory separator. RAR 5.0 names
// use a slash and are converted to backslashes, so all entries share one naming convention.
type Entry struct {
	index int // position among the file entries of the archive

	nameLegacy string
	nameWide   string
	unicode    bool

	dir         bool
	encrypted   bool
	fileHeader  bool
	symlink     bool
	solid       bool
	splitBefore bool
	splitAfter  bool

	hostOS       byte
	attributes   uint32
	packedSize   int64
	unpackedSize int64
	modTime      time.Time

	headerPos int64 // offset of the block header
	headerLen int64 // length of the block header
	dataPos   int64 // offset of the packed data
}

// NameLegacy returns the name decoded from the legacy (non-Unicode) representation.
func (e *Entry) NameLegacy() string {
	return e.nameLegacy
}

// NameWide returns the name decoded from the Unicode representation, if present.
func (e *Entry) NameWide() (string, bool) {
	return e.nameWide, e.unicode
}

// IsUnicode returns true if the header carries a Unicode name.
func (e *Entry) IsUnicode() bool {
	return e.unicode
}

// Name returns the wide name if available, otherwise the legacy name.
func (e *Entry) Name() string {
	if e.unicode {
		return e.nameWide
	}
	return e.nameLegacy
}

// IsDirectory returns true if the entry is a directory.
func (e *Entry) IsDirectory() bool {
	return e.dir
}

// IsEncrypted returns true if the entry data is encrypted.
func (e *Entry) IsEncrypted() bool {
	return e.encrypted
}

// IsFileHeader returns true if the entry was read from a file header block.
func (e *Entry) IsFileHeader() bool {
	return e.fileHeader
}

// IsSymlink returns true if the entry is a symbolic link.
func (e *Entry) IsSymlink() bool {
	return e.symlink
}

// IsSolid returns true if decoding the entry depends on the previous entries.
func (e *Entry) IsSolid() bool {
	return e.solid
}

// IsSplit returns true if the entry data continues from or into another volume.
func (e *Entry) IsSplit() bool {
	return e.splitBefore || e.splitAfter
}

// HostOS returns the operating system the entry was archived on.
func (e *Entry) HostOS() byte {
	return e.hostOS
}

// Attributes returns the host specific file attributes.
func (e *Entry) Attributes() uint32 {
	return e.attributes
}

// Mode returns the file mode derived from the attributes.
func (e *Entry) Mode() fs.FileMode {
	var m fs.FileMode
	if e.dir {
		m = fs.ModeDir
	}
	switch e.hostOS {
	case HostUnix, HostBeOS:
		m |= fs.FileMode(e.attributes) & fs.ModePerm
	default:
		switch {
		case e.dir:
			m |= 0777
		case e.attributes&1 != 0:
			m |= 0444 // read-only
		default:
			m |= 0666
		}
	}
	return m
}

// PackedSize returns the size of the compressed data.
func (e *Entry) PackedSize() int64 {
	return e.packedSize
}

// Size returns the size of the decompressed data. Unknown sizes are reported as -1.
func (e *Entry) Size() int64 {
	return e.unpackedSize
}

// ModTime returns the modification time. It is the zero time if the header does not carry one.
func (e *Entry) ModTime() time.Time {
	return e.modTime
}
