// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// entryPathSeparator separates the segments of entry names, independent of the host
// platform the archive was created on or is extracted on.
const entryPathSeparator = `\`

// entryName returns the name used to build the output path of e. The Unicode name is
// used if the header carries one. For files it is additionally required that the entry
// was read from a file header record.
func entryName(e Entry) string {
	if e.IsUnicode() && (e.IsDirectory() || e.IsFileHeader()) {
		if wide, ok := e.NameWide(); ok {
			return wide
		}
	}
	return e.NameLegacy()
}

// splitEntryName splits name into its path segments.
//
// Empty and "." segments are dropped, which covers leading, trailing and doubled
// separators. A ".." segment, a segment containing a slash or a NUL byte and a
// combination of segments that is not a local path on the host are rejected with
// [ErrUnsafePath].
func splitEntryName(name string) ([]string, error) {
	var segments []string
	for _, s := range strings.Split(name, entryPathSeparator) {
		switch {
		case s == "" || s == ".":
			continue
		case s == "..":
			return nil, fmt.Errorf("%w: path traversal in %q", ErrUnsafePath, name)
		case strings.ContainsAny(s, "/\x00"):
			return nil, fmt.Errorf("%w: invalid character in %q", ErrUnsafePath, name)
		}
		segments = append(segments, s)
	}

	// nothing left to create
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty name %q", ErrUnsafePath, name)
	}

	// e.g. volume names and reserved names on windows
	if !filepath.IsLocal(filepath.Join(segments...)) {
		return nil, fmt.Errorf("%w: %q is not a local path", ErrUnsafePath, name)
	}

	return segments, nil
}

// patternName returns the slash separated relative path that patterns are matched against.
func patternName(segments []string) string {
	return strings.Join(segments, "/")
}

// checkPatterns checks if name matches any of the given patterns. Patterns use a slash
// as separator on every platform. If no patterns are given, the function returns true.
func checkPatterns(patterns []string, name string) (bool, error) {

	// no patterns given
	if len(patterns) == 0 {
		return true, nil
	}

	// check if name matches any pattern
	for _, pattern := range patterns {
		if match, err := path.Match(pattern, name); err != nil {
			return false, fmt.Errorf("failed to match pattern: %w", err)
		} else if match {
			return true, nil
		}
	}
	return false, nil
}
