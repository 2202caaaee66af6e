// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import "github.com/pkg/errors"

var (
	// ErrNoSignature is returned if no RAR signature is found in the input.
	ErrNoSignature = errors.New("rar: signature not found")

	// ErrUnknownVersion is returned for signatures of unsupported format versions.
	ErrUnknownVersion = errors.New("rar: unknown archive version")

	// ErrCorruptHeader is returned if a block header is truncated or malformed.
	ErrCorruptHeader = errors.New("rar: corrupt block header")

	// ErrBadHeaderCRC is returned if a block header checksum does not match.
	ErrBadHeaderCRC = errors.New("rar: bad header crc")

	// ErrEncrypted is returned when extracting an encrypted entry or archive.
	ErrEncrypted = errors.New("rar: encrypted content is not supported")

	// ErrMultiVolume is returned for entries that continue in another volume.
	ErrMultiVolume = errors.New("rar: multi-volume entries are not supported")

	// ErrInputTooLarge is returned by Open if the archive exceeds the configured maximum input size.
	ErrInputTooLarge = errors.New("rar: input size exceeded")

	// ErrClosed is returned by operations on a closed archive.
	ErrClosed = errors.New("rar: archive closed")

	// ErrUnknownEntry is returned by ExtractInto for entries that do not belong to the archive.
	ErrUnknownEntry = errors.New("rar: entry does not belong to archive")

	// ErrDirectory is returned by ExtractInto for directory entries.
	ErrDirectory = errors.New("rar: entry is a directory")
)
