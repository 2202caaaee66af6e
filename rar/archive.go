// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"bytes"
	"io"
	"os"

	"github.com/nwaples/rardecode"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	// defaultMaxInputSize is the default maximum size of an archive, -1 disables the check
	defaultMaxInputSize = -1
)

// Option configures how an archive is opened.
type Option func(*options)

type options struct {
	maxInputSize int64
	legacy       encoding.Encoding
}

// WithMaxInputSize limits the size of archives that can be opened. A negative value
// disables the check.
func WithMaxInputSize(size int64) Option {
	return func(o *options) {
		o.maxInputSize = size
	}
}

// WithLegacyNameEncoding sets the character set used to decode names that are not
// stored as Unicode. The default is IBM Code Page 437, the OEM code page RAR uses
// for DOS and Windows archives.
func WithLegacyNameEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.legacy = enc
	}
}

// Archive is a RAR archive opened for random access. All block headers are read when
// the archive is opened.
type Archive struct {
	r       io.ReaderAt
	size    int64
	closer  io.Closer
	version int
	idx     *index

	next   int          // cursor of Next
	solid  *solidStream // sequential decoder for solid archives
	closed bool
}

// solidStream decodes the entries of a solid archive in order.
type solidStream struct {
	rr   *rardecode.Reader
	next int // index of the entry returned by the next call to rr.Next
}

// Open opens the archive file at path.
func Open(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, errors.Errorf("%s is a directory", path)
	}

	a, err := NewArchive(f, fi.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// NewArchive reads the block headers of the archive in r, which holds size bytes.
func NewArchive(r io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	o := &options{
		maxInputSize: defaultMaxInputSize,
		legacy:       charmap.CodePage437,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.maxInputSize >= 0 && size > o.maxInputSize {
		return nil, errors.Wrapf(ErrInputTooLarge, "archive size %d exceeds limit %d", size, o.maxInputSize)
	}

	start, version, err := findSignature(r, size)
	if err != nil {
		return nil, err
	}

	scan := scan15
	if version == Version50 {
		scan = scan50
	}
	idx, err := scan(r, start, size, &nameDecoder{enc: o.legacy})
	if err != nil {
		return nil, err
	}
	if idx.main.length == 0 {
		return nil, errors.Wrap(ErrCorruptHeader, "missing main archive header")
	}

	return &Archive{
		r:       r,
		size:    size,
		version: version,
		idx:     idx,
	}, nil
}

// Version returns the block format version, Version15 or Version50.
func (a *Archive) Version() int {
	return a.version
}

// Size returns the size of the archive in bytes.
func (a *Archive) Size() int64 {
	return a.size
}

// IsEncrypted returns true if the block headers are encrypted. No entries can be read
// from such an archive without the password.
func (a *Archive) IsEncrypted() bool {
	return a.idx.encrypted
}

// IsSolid returns true if the entries are compressed as one continuous stream.
func (a *Archive) IsSolid() bool {
	return a.idx.solid
}

// IsVolume returns true if the archive is part of a multi-volume set.
func (a *Archive) IsVolume() bool {
	return a.idx.volume
}

// Entries returns all file entries in archive order.
func (a *Archive) Entries() []*Entry {
	entries := make([]*Entry, len(a.idx.entries))
	copy(entries, a.idx.entries)
	return entries
}

// Next returns the next entry in archive order, or io.EOF if there are no more entries.
func (a *Archive) Next() (*Entry, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if a.next >= len(a.idx.entries) {
		return nil, io.EOF
	}
	e := a.idx.entries[a.next]
	a.next++
	return e, nil
}

// ExtractInto decompresses the data of e into w. The checksum of the data is verified
// once all of it has been written.
func (a *Archive) ExtractInto(e *Entry, w io.Writer) error {
	switch {
	case a.closed:
		return ErrClosed
	case e == nil || e.index < 0 || e.index >= len(a.idx.entries) || a.idx.entries[e.index] != e:
		return ErrUnknownEntry
	case e.dir:
		return ErrDirectory
	case e.encrypted:
		return ErrEncrypted
	case e.IsSplit():
		return ErrMultiVolume
	}

	var rr io.Reader
	var err error
	if a.idx.solid {
		rr, err = a.seekSolid(e)
	} else {
		rr, err = a.single(e)
	}
	if err != nil {
		return errors.Wrapf(err, "cannot decode %s", e.Name())
	}
	if _, err := io.Copy(w, rr); err != nil {
		return errors.Wrapf(err, "cannot decode %s", e.Name())
	}
	return nil
}

// single returns a decoder for an entry of a non-solid archive. The decoder reads a
// stream made of the signature, the main header and the entry block only.
func (a *Archive) single(e *Entry) (io.Reader, error) {
	sig := signature15
	if a.version == Version50 {
		sig = signature50
	}
	stream := io.MultiReader(
		bytes.NewReader(sig),
		io.NewSectionReader(a.r, a.idx.main.pos, a.idx.main.length),
		io.NewSectionReader(a.r, e.headerPos, e.headerLen+e.packedSize),
	)
	rr, err := rardecode.NewReader(stream, "")
	if err != nil {
		return nil, err
	}
	if _, err := rr.Next(); err != nil {
		return nil, err
	}
	return rr, nil
}

// seekSolid advances the sequential decoder to e. Entries in front of e are decoded and
// discarded. Going backwards restarts the decoder at the beginning of the archive.
func (a *Archive) seekSolid(e *Entry) (io.Reader, error) {
	if a.solid == nil || a.solid.next > e.index {
		rr, err := rardecode.NewReader(io.NewSectionReader(a.r, 0, a.size), "")
		if err != nil {
			return nil, err
		}
		a.solid = &solidStream{rr: rr}
	}
	for a.solid.next <= e.index {
		if _, err := a.solid.rr.Next(); err != nil {
			a.solid = nil
			return nil, err
		}
		a.solid.next++
	}
	return a.solid.rr, nil
}

// Close releases the underlying file if the archive was opened with Open.
func (a *Archive) Close() error {
	if a.closed {
		return ErrClosed
	}
	a.closed = true
	a.solid = nil
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
