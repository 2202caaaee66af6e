// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// block locates a header block in the archive.
type block struct {
	pos    int64
	length int64
}

// index is the result of scanning all block headers of an archive.
type index struct {
	main      block // main archive header, copied in front of single entry streams
	encrypted bool  // block headers are encrypted, nothing behind the main header is readable
	solid     bool
	volume    bool
	entries   []*Entry
}

// add appends a file entry and assigns its position.
func (x *index) add(e *Entry) {
	e.index = len(x.entries)
	x.entries = append(x.entries, e)
}

// scanner reads block headers of one archive format.
type scanner func(r io.ReaderAt, start, size int64, names *nameDecoder) (*index, error)

// nameDecoder converts legacy (non-Unicode) names to strings.
type nameDecoder struct {
	enc encoding.Encoding
}

// legacy decodes b. Valid UTF-8 is used as is, everything else is decoded with the
// configured legacy encoding.
func (d *nameDecoder) legacy(b []byte) string {
	if utf8.Valid(b) || d.enc == nil {
		return string(b)
	}
	s, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// readAt reads exactly len(buf) bytes at off.
func readAt(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

var le = binary.LittleEndian
