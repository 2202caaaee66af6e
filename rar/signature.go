// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Format versions of RAR archives.
const (
	Version15 = 15 // RAR 1.5 up to 4.x block format
	Version50 = 50 // RAR 5.0 block format
)

// maxSfxSize is the maximum number of bytes searched for the signature. Self-extracting
// archives carry an executable stub in front of the archive data.
const maxSfxSize = 1 << 20

var (
	signature15 = []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}       // Rar 1.5
	signature50 = []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00} // Rar 5.0
	sigPrefix   = signature15[:6]
)

// magicBytes are the signatures of all supported versions.
var magicBytes = [][]byte{signature15, signature50}

// IsRar checks if the header matches the magic bytes for Rar files.
func IsRar(header []byte) bool {
	for _, mb := range magicBytes {
		if len(header) >= len(mb) && bytes.Equal(mb, header[:len(mb)]) {
			return true
		}
	}
	return false
}

// findSignature searches the first maxSfxSize bytes of r for a RAR signature. It returns the
// offset of the first byte after the signature and the format version.
func findSignature(r io.ReaderAt, size int64) (int64, int, error) {
	limit := size
	if limit > maxSfxSize+int64(len(signature50)) {
		limit = maxSfxSize + int64(len(signature50))
	}
	buf := make([]byte, limit)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "cannot read signature")
	}
	buf = buf[:n]

	for off := 0; off < len(buf); {
		i := bytes.Index(buf[off:], sigPrefix)
		if i < 0 {
			break
		}
		pos := off + i
		rest := buf[pos:]
		switch {
		case bytes.HasPrefix(rest, signature15):
			return int64(pos + len(signature15)), Version15, nil
		case bytes.HasPrefix(rest, signature50):
			return int64(pos + len(signature50)), Version50, nil
		case len(rest) > len(sigPrefix) && rest[len(sigPrefix)] > 1:
			return 0, 0, ErrUnknownVersion
		}
		off = pos + 1
	}
	return 0, 0, ErrNoSignature
}
