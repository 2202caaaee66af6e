// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"hash/crc32"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// block types of the RAR 5.0 format
const (
	block50Main    = 1
	block50File    = 2
	block50Service = 3
	block50Encrypt = 4
	block50End     = 5
)

// header flags of the RAR 5.0 format
const (
	flag50Extra       = 0x0001
	flag50Data        = 0x0002
	flag50SplitBefore = 0x0008
	flag50SplitAfter  = 0x0010

	main50Volume = 0x0001
	main50Solid  = 0x0004

	file50Dir         = 0x0001
	file50UnixMtime   = 0x0002
	file50CRC32       = 0x0004
	file50UnknownSize = 0x0008

	comp50Solid = 0x0040

	extra50Encryption  = 1
	extra50Time        = 3
	extra50Redirection = 5

	time50Unix  = 0x0001
	time50Mtime = 0x0002
)

const (
	max50HeaderSize = 2 << 20
	max50VintSize   = 10
)

// scan50 reads all block headers of a RAR 5.0 archive starting at start.
func scan50(r io.ReaderAt, start, size int64, _ *nameDecoder) (*index, error) {
	x := &index{}
	pos := start
	for pos < size {
		// crc32 followed by the header size
		pre := make([]byte, 4+3)
		if rest := size - pos; rest < int64(len(pre)) {
			pre = pre[:rest]
		}
		if err := readAt(r, pre, pos); err != nil {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d: %s", pos, err)
		}
		if len(pre) < 5 {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
		}
		hsize, n := readVint(pre[4:])
		if n == 0 || hsize == 0 || hsize > max50HeaderSize {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
		}
		end := pos + 4 + int64(n) + int64(hsize)
		if end > size {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
		}

		// the checksum covers the size field and the header
		buf := make([]byte, end-pos-4)
		if err := readAt(r, buf, pos+4); err != nil {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d: %s", pos, err)
		}
		if crc32.ChecksumIEEE(buf) != le.Uint32(pre[0:4]) {
			return nil, errors.Wrapf(ErrBadHeaderCRC, "block at %d", pos)
		}

		h, err := parseBlock50(buf[n:])
		if err != nil {
			return nil, errors.Wrapf(err, "block at %d", pos)
		}

		switch h.htype {
		case block50Encrypt:
			x.encrypted = true
			return x, nil

		case block50Main:
			x.main = block{pos: pos, length: end - pos}
			flags, _ := readVint(h.fields)
			x.solid = flags&main50Solid != 0
			x.volume = flags&main50Volume != 0

		case block50File:
			e, err := parseFile50(h)
			if err != nil {
				return nil, errors.Wrapf(err, "file header at %d", pos)
			}
			e.headerPos = pos
			e.headerLen = end - pos
			e.dataPos = end
			e.packedSize = h.dataSize
			x.add(e)

		case block50End:
			return x, nil
		}

		pos = end + h.dataSize
	}
	return x, nil
}

// block50 is a decoded RAR 5.0 block header.
type block50 struct {
	htype    uint64
	flags    uint64
	dataSize int64
	fields   []byte // type specific fields
	extra    []byte // extra area records
}

// parseBlock50 decodes the fields shared by all block types.
func parseBlock50(b []byte) (*block50, error) {
	h := &block50{}
	var n int
	if h.htype, n = readVint(b); n == 0 {
		return nil, ErrCorruptHeader
	}
	b = b[n:]
	if h.flags, n = readVint(b); n == 0 {
		return nil, ErrCorruptHeader
	}
	b = b[n:]

	var extraSize uint64
	if h.flags&flag50Extra != 0 {
		if extraSize, n = readVint(b); n == 0 {
			return nil, ErrCorruptHeader
		}
		b = b[n:]
	}
	if h.flags&flag50Data != 0 {
		var dataSize uint64
		if dataSize, n = readVint(b); n == 0 {
			return nil, ErrCorruptHeader
		}
		if dataSize > 1<<62 {
			return nil, ErrCorruptHeader
		}
		h.dataSize = int64(dataSize)
		b = b[n:]
	}
	if extraSize > uint64(len(b)) {
		return nil, ErrCorruptHeader
	}
	h.fields = b[:uint64(len(b))-extraSize]
	h.extra = b[uint64(len(b))-extraSize:]
	return h, nil
}

// parseFile50 decodes a file header and its extra records.
func parseFile50(h *block50) (*Entry, error) {
	b := h.fields
	e := &Entry{
		fileHeader:  true,
		unicode:     true,
		splitBefore: h.flags&flag50SplitBefore != 0,
		splitAfter:  h.flags&flag50SplitAfter != 0,
	}

	var v [3]uint64 // file flags, unpacked size, attributes
	for i := range v {
		var n int
		if v[i], n = readVint(b); n == 0 {
			return nil, ErrCorruptHeader
		}
		b = b[n:]
	}
	flags := v[0]
	e.dir = flags&file50Dir != 0
	e.unpackedSize = int64(v[1])
	if flags&file50UnknownSize != 0 {
		e.unpackedSize = -1
	}
	e.attributes = uint32(v[2])

	if flags&file50UnixMtime != 0 {
		if len(b) < 4 {
			return nil, ErrCorruptHeader
		}
		e.modTime = time.Unix(int64(le.Uint32(b)), 0)
		b = b[4:]
	}
	if flags&file50CRC32 != 0 {
		if len(b) < 4 {
			return nil, ErrCorruptHeader
		}
		b = b[4:]
	}

	var w [3]uint64 // compression info, host os, name length
	for i := range w {
		var n int
		if w[i], n = readVint(b); n == 0 {
			return nil, ErrCorruptHeader
		}
		b = b[n:]
	}
	e.solid = w[0]&comp50Solid != 0
	switch w[1] {
	case 0:
		e.hostOS = HostWindows
	case 1:
		e.hostOS = HostUnix
	default:
		e.hostOS = HostUnknown
	}
	if w[2] > uint64(len(b)) {
		return nil, ErrCorruptHeader
	}

	// RAR 5.0 names are UTF-8 with a slash as separator
	name := strings.ReplaceAll(string(b[:w[2]]), "/", `\`)
	e.nameLegacy = name
	e.nameWide = name

	extra := h.extra
	for len(extra) > 0 {
		size, n := readVint(extra)
		if n == 0 || size > uint64(len(extra)-n) {
			return nil, ErrCorruptHeader
		}
		rec := extra[n : n+int(size)]
		extra = extra[n+int(size):]

		rtype, m := readVint(rec)
		if m == 0 {
			return nil, ErrCorruptHeader
		}
		switch rtype {
		case extra50Encryption:
			e.encrypted = true
		case extra50Time:
			if t, ok := parseTime50(rec[m:]); ok {
				e.modTime = t
			}
		case extra50Redirection:
			e.symlink = true
		}
	}
	return e, nil
}

// parseTime50 returns the modification time of a time extra record.
func parseTime50(b []byte) (time.Time, bool) {
	flags, n := readVint(b)
	if n == 0 || flags&time50Mtime == 0 {
		return time.Time{}, false
	}
	b = b[n:]
	if flags&time50Unix != 0 {
		if len(b) < 4 {
			return time.Time{}, false
		}
		return time.Unix(int64(le.Uint32(b)), 0), true
	}
	if len(b) < 8 {
		return time.Time{}, false
	}
	return windowsFileTime(le.Uint64(b)), true
}

// windowsFileTime converts 100-nanosecond intervals since January 1, 1601 UTC.
func windowsFileTime(ft uint64) time.Time {
	const unixEpoch = 116444736000000000
	if ft < unixEpoch {
		return time.Time{}
	}
	d := ft - unixEpoch
	return time.Unix(int64(d/1e7), int64(d%1e7)*100)
}

// readVint decodes a variable length integer. It returns the number of consumed bytes,
// which is 0 if b does not hold a complete value.
func readVint(b []byte) (uint64, int) {
	var v uint64
	for i := 0; i < len(b) && i < max50VintSize; i++ {
		v |= uint64(b[i]&0x7f) << (7 * uint(i))
		if b[i]&0x80 == 0 {
			return v, i + 1
		}
	}
	return 0, 0
}
