// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-unrar/rar"
)

// fileExtensionRar is the file extension for Rar files.
const fileExtensionRar = "rar"

// IsRar checks if the header matches the magic bytes for Rar files.
func IsRar(header []byte) bool {
	return rar.IsRar(header)
}

// OpenRar opens the Rar archive at path with the limits and the name encoding of cfg.
func OpenRar(path string, cfg *Config) (Archive, error) {
	a, err := rar.Open(path, rarOptions(cfg)...)
	if err != nil {
		return nil, rarOpenError(err)
	}
	return &rarArchive{a}, nil
}

// NewRarArchive reads the Rar archive of size bytes from r with the limits and the name
// encoding of cfg.
func NewRarArchive(r io.ReaderAt, size int64, cfg *Config) (Archive, error) {
	a, err := rar.NewArchive(r, size, rarOptions(cfg)...)
	if err != nil {
		return nil, rarOpenError(err)
	}
	return &rarArchive{a}, nil
}

func rarOptions(cfg *Config) []rar.Option {
	if cfg == nil {
		cfg = NewConfig()
	}
	return []rar.Option{
		rar.WithMaxInputSize(cfg.MaxInputSize()),
		rar.WithLegacyNameEncoding(cfg.LegacyNameEncoding()),
	}
}

// rarOpenError maps the input size violation to ErrMaxInputSizeExceeded.
func rarOpenError(err error) error {
	if errors.Is(err, rar.ErrInputTooLarge) {
		return fmt.Errorf("%w: %w", ErrMaxInputSizeExceeded, err)
	}
	return err
}

// rarArchive is an Archive for Rar files.
type rarArchive struct {
	*rar.Archive
}

// Next returns the next entry in the rar file.
func (ra *rarArchive) Next() (Entry, error) {
	e, err := ra.Archive.Next()
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ExtractInto writes the data of e, which must be an entry of ra, to w.
func (ra *rarArchive) ExtractInto(e Entry, w io.Writer) error {
	re, ok := e.(*rar.Entry)
	if !ok {
		return fmt.Errorf("%w: %T", rar.ErrUnknownEntry, e)
	}
	return ra.Archive.ExtractInto(re, w)
}
