// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"bytes"
	"hash/crc32"
	"io"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// block types of the RAR 1.5 format
const (
	block15Main    = 0x73
	block15File    = 0x74
	block15Service = 0x7a
	block15End     = 0x7b
)

// header flags of the RAR 1.5 format
const (
	flag15LongBlock = 0x8000

	main15Volume   = 0x0001
	main15Solid    = 0x0008
	main15Password = 0x0080

	file15SplitBefore = 0x0001
	file15SplitAfter  = 0x0002
	file15Password    = 0x0004
	file15Solid       = 0x0010
	file15WindowMask  = 0x00e0
	file15Large       = 0x0100
	file15Unicode     = 0x0200
)

const (
	header15Size     = 7  // crc, type, flags, size
	file15FixedSize  = 25 // fixed part of a file header behind the block header
	unix15SymlinkBit = 0xA000
)

// scan15 reads all block headers of a RAR 1.5 - 4.x archive starting at start.
func scan15(r io.ReaderAt, start, size int64, names *nameDecoder) (*index, error) {
	x := &index{}
	pos := start
	for pos < size {
		base := make([]byte, header15Size)
		if err := readAt(r, base, pos); err != nil {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d: %s", pos, err)
		}
		htype := base[2]
		flags := le.Uint16(base[3:5])
		hsize := int64(le.Uint16(base[5:7]))
		if hsize < header15Size || pos+hsize > size {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
		}

		buf := make([]byte, hsize)
		if err := readAt(r, buf, pos); err != nil {
			return nil, errors.Wrapf(ErrCorruptHeader, "block at %d: %s", pos, err)
		}
		if uint16(crc32.ChecksumIEEE(buf[2:])) != le.Uint16(buf[0:2]) {
			return nil, errors.Wrapf(ErrBadHeaderCRC, "block at %d", pos)
		}

		var dataSize int64
		if flags&flag15LongBlock != 0 {
			if hsize < header15Size+4 {
				return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
			}
			dataSize = int64(le.Uint32(buf[7:11]))
		}
		if (htype == block15File || htype == block15Service) && flags&file15Large != 0 {
			if hsize < header15Size+file15FixedSize+8 {
				return nil, errors.Wrapf(ErrCorruptHeader, "block at %d", pos)
			}
			dataSize |= int64(le.Uint32(buf[32:36])) << 32
		}

		switch htype {
		case block15Main:
			x.main = block{pos: pos, length: hsize}
			x.solid = flags&main15Solid != 0
			x.volume = flags&main15Volume != 0
			if flags&main15Password != 0 {
				x.encrypted = true
				return x, nil
			}

		case block15File:
			e, err := parseFile15(buf[header15Size:], flags, names)
			if err != nil {
				return nil, errors.Wrapf(err, "file header at %d", pos)
			}
			e.headerPos = pos
			e.headerLen = hsize
			e.dataPos = pos + hsize
			e.packedSize = dataSize
			x.add(e)

		case block15End:
			return x, nil
		}

		pos += hsize + dataSize
	}

	// RAR 1.5 archives are not required to carry an end block
	return x, nil
}

// parseFile15 decodes the fixed part and the name of a file header.
func parseFile15(b []byte, flags uint16, names *nameDecoder) (*Entry, error) {
	if len(b) < file15FixedSize {
		return nil, ErrCorruptHeader
	}
	unpacked := le.Uint32(b[4:8])
	hostOS := b[8]
	ftime := le.Uint32(b[13:17])
	nameSize := int(le.Uint16(b[19:21]))
	attributes := le.Uint32(b[21:25])
	b = b[file15FixedSize:]

	e := &Entry{
		fileHeader:   true,
		dir:          flags&file15WindowMask == file15WindowMask,
		encrypted:    flags&file15Password != 0,
		solid:        flags&file15Solid != 0,
		splitBefore:  flags&file15SplitBefore != 0,
		splitAfter:   flags&file15SplitAfter != 0,
		hostOS:       hostOS,
		attributes:   attributes,
		unpackedSize: int64(unpacked),
		modTime:      dosTime(ftime),
	}
	if hostOS > HostBeOS {
		e.hostOS = HostUnknown
	}

	switch {
	case flags&file15Large != 0:
		if len(b) < 8 {
			return nil, ErrCorruptHeader
		}
		e.unpackedSize |= int64(le.Uint32(b[4:8])) << 32
		b = b[8:]
	case unpacked == 0xffffffff:
		e.unpackedSize = -1
	}

	if len(b) < nameSize {
		return nil, ErrCorruptHeader
	}
	name := b[:nameSize]

	if flags&file15Unicode != 0 {
		e.unicode = true
		if i := bytes.IndexByte(name, 0); i >= 0 {
			e.nameLegacy = names.legacy(name[:i])
			e.nameWide = decodeWideName(name[:i], name[i+1:])
		} else {
			// no legacy part, the name is stored as UTF-8
			e.nameLegacy = string(name)
			e.nameWide = string(name)
		}
	} else {
		e.nameLegacy = names.legacy(name)
	}

	if e.hostOS == HostUnix && attributes&0xF000 == unix15SymlinkBit {
		e.symlink = true
	}
	return e, nil
}

// decodeWideName decodes the compressed UTF-16 name stored behind the legacy name of a
// RAR 1.5 Unicode file header. Characters are either literal bytes, bytes combined with a
// shared high byte, full 16-bit units or runs copied from the legacy name.
func decodeWideName(legacy, enc []byte) string {
	if len(enc) == 0 {
		return string(legacy)
	}
	high := uint16(enc[0])
	enc = enc[1:]

	var flags byte
	var flagBits int
	wide := make([]uint16, 0, len(legacy))

decode:
	for len(enc) > 0 {
		if flagBits == 0 {
			flags = enc[0]
			enc = enc[1:]
			flagBits = 8
			if len(enc) == 0 {
				break
			}
		}

		switch flags >> 6 {
		case 0:
			wide = append(wide, uint16(enc[0]))
			enc = enc[1:]
		case 1:
			wide = append(wide, uint16(enc[0])|high<<8)
			enc = enc[1:]
		case 2:
			if len(enc) < 2 {
				break decode
			}
			wide = append(wide, le.Uint16(enc[0:2]))
			enc = enc[2:]
		case 3:
			n := int(enc[0])
			enc = enc[1:]
			if n&0x80 != 0 {
				if len(enc) == 0 {
					break decode
				}
				correction := enc[0]
				enc = enc[1:]
				for n = n&0x7f + 2; n > 0 && len(wide) < len(legacy); n-- {
					wide = append(wide, uint16(legacy[len(wide)]+correction)|high<<8)
				}
			} else {
				for n += 2; n > 0 && len(wide) < len(legacy); n-- {
					wide = append(wide, uint16(legacy[len(wide)]))
				}
			}
		}
		flags <<= 2
		flagBits -= 2
	}

	if i := indexZero(wide); i >= 0 {
		wide = wide[:i]
	}
	return string(utf16.Decode(wide))
}

func indexZero(s []uint16) int {
	for i, c := range s {
		if c == 0 {
			return i
		}
	}
	return -1
}

// dosTime converts an MS-DOS date and time to the local time zone.
func dosTime(t uint32) time.Time {
	if t == 0 {
		return time.Time{}
	}
	sec := int(t&0x1f) * 2
	t >>= 5
	minute := int(t & 0x3f)
	t >>= 6
	hour := int(t & 0x1f)
	t >>= 5
	day := int(t & 0x1f)
	t >>= 5
	month := time.Month(t & 0x0f)
	t >>= 4
	year := int(t&0x7f) + 1980
	return time.Date(year, month, day, hour, minute, sec, 0, time.Local)
}
