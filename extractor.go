// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar

import (
	"context"
	"fmt"
	"io"
)

// Extractor reconstructs the directory and file tree of an archive below a destination
// directory. Entries are processed sequentially in archive order.
type Extractor struct {
	target Target
	cfg    *Config
}

// NewExtractor creates an extractor writing to t. A nil target writes to the local disk,
// a nil config uses the defaults of [NewConfig].
func NewExtractor(t Target, cfg *Config) *Extractor {
	if t == nil {
		t = NewTargetDisk()
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Extractor{target: t, cfg: cfg}
}

// ExtractArchive extracts the archive at archivePath to the existing directory dst on
// the local disk. See [Extractor.Extract] for the details.
func ExtractArchive(ctx context.Context, archivePath, dst string, cfg *Config) error {
	return NewExtractor(NewTargetDisk(), cfg).ExtractArchive(ctx, archivePath, dst)
}

// ExtractArchive opens the archive at archivePath with the configured opener and
// extracts it to the existing directory dst. If the archive cannot be opened, an
// [*OpenError] is returned and nothing is extracted. See [Extractor.Extract] for the
// extraction itself.
func (x *Extractor) ExtractArchive(ctx context.Context, archivePath, dst string) error {
	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: fileExtensionRar}
	defer x.cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	// log extraction
	x.cfg.Logger().Info("extracting archive", "archive", archivePath, "destination", dst)

	a, err := x.cfg.Opener()(archivePath)
	if err != nil {
		oerr := &OpenError{Path: archivePath, Err: err}
		td.ExtractionErrors++
		td.LastExtractionError = oerr
		x.cfg.Logger().Error("cannot open archive", "archive", archivePath, "error", err)
		return oerr
	}

	return x.extract(ctx, a, dst, td)
}

// Extract extracts the already opened archive a to the existing directory dst and
// closes a once done, on every path out of the function.
//
// An encrypted archive is skipped with a warning and nil is returned. Encrypted entries
// are skipped with a warning. Directory entries create every directory of their path.
// File entries create the missing parent directories and write the decompressed data to
// a new file, an existing file is truncated. If a file cannot be created or the data of
// an entry cannot be extracted, an [*ExtractionError] is returned and the remaining
// entries are not processed, unless [WithContinueOnError] is configured. Entries
// extracted before the failure remain on disk, the output of the failing entry is removed.
//
// A failure to close a is logged at warning level and never returned.
func (x *Extractor) Extract(ctx context.Context, a Archive, dst string) error {
	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: fileExtensionRar}
	defer x.cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	return x.extract(ctx, a, dst, td)
}

// extract checks ctx for cancellation, while it reads the entries of a and extracts them to dst.
func (x *Extractor) extract(ctx context.Context, a Archive, dst string, td *TelemetryData) error {
	c := x.cfg

	// release the archive on every exit
	defer func() {
		if err := a.Close(); err != nil {
			c.Logger().Warn("cannot close archive", "error", err)
		}
	}()

	// capture input size
	if s, ok := a.(sizedArchive); ok {
		td.InputSize = s.Size()
	}

	// nothing can be read from an encrypted archive
	if a.IsEncrypted() {
		c.Logger().Warn("unsupported encrypted archive")
		td.ArchiveEncrypted = true
		return nil
	}

	var objectCounter int64
	var extractedBytes int64

	for {
		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return err
		}

		// get next entry
		e, err := a.Next()
		switch {

		// if no more entries are found exit loop
		case err == io.EOF:
			c.Logger().Info("extraction completed",
				"dirs", td.ExtractedDirs,
				"files", td.ExtractedFiles,
				"size", td.ExtractionSize)
			return nil

		// the archive cannot be read any further
		case err != nil:
			err = fmt.Errorf("cannot read entry: %w", err)
			td.ExtractionErrors++
			td.LastExtractionError = err
			c.Logger().Error("cannot read entry", "error", err)
			return err

		// the entry sequence is corrupt
		case e == nil:
			err = fmt.Errorf("cannot read entry: %w", ErrNilEntry)
			td.ExtractionErrors++
			td.LastExtractionError = err
			c.Logger().Error("cannot read entry", "error", err)
			return err
		}

		name := entryName(e)

		// encrypted entries are skipped
		if e.IsEncrypted() {
			c.Logger().Warn("unsupported encrypted entry", "name", name)
			td.EncryptedEntries++
			continue
		}

		// check if maximum of objects is exceeded
		objectCounter++
		if err := c.CheckMaxFiles(objectCounter); err != nil {
			return handleError(c, td, "max objects check failed", &ExtractionError{Entry: name, Err: err})
		}

		// symlinks are unsupported
		if l, ok := e.(symlinkEntry); ok && l.IsSymlink() {
			if c.ContinueOnUnsupportedFiles() {
				c.Logger().Info("skipped symlink extraction", "name", name)
				td.UnsupportedFiles++
				td.LastUnsupportedFile = name
				continue
			}
			if err := handleError(c, td, "unsupported file", &ExtractionError{Entry: name, Err: ErrUnsupportedFile}); err != nil {
				return err
			}
			continue
		}

		// resolve path below dst
		segments, err := splitEntryName(name)
		if err != nil {
			if err := handleError(c, td, "unsafe entry name", &ExtractionError{Entry: name, Err: err}); err != nil {
				return err
			}
			continue
		}

		// check if file needs to match patterns
		match, err := checkPatterns(c.Patterns(), patternName(segments))
		if err != nil {
			return handleError(c, td, "cannot check pattern", err)
		}
		if !match {
			c.Logger().Info("skipping file (pattern mismatch)", "name", name)
			td.PatternMismatches++
			continue
		}

		c.Logger().Debug("extract", "name", name)

		// directory entries create every segment of their path
		if e.IsDirectory() {
			if _, err := createDirChain(x.target, dst, segments, c); err != nil {
				if err := handleError(c, td, "cannot create directory", &ExtractionError{Entry: name, Err: err}); err != nil {
					return err
				}
				continue
			}

			// store telemetry and continue
			td.ExtractedDirs++
			continue
		}

		// check extraction size with the size from the header
		if s, ok := e.(sizedEntry); ok && s.Size() > 0 {
			if err := c.CheckExtractionSize(extractedBytes + s.Size()); err != nil {
				return handleError(c, td, "max extraction size exceeded", &ExtractionError{Entry: name, Err: err})
			}
		}

		// create file
		n, err := x.extractFile(a, e, dst, segments, extractedBytes)
		extractedBytes += n
		td.ExtractionSize = extractedBytes
		if err != nil {
			if err := handleError(c, td, "cannot extract entry", &ExtractionError{Entry: name, Err: err}); err != nil {
				return err
			}
			continue
		}

		// store telemetry
		c.Logger().Info("extracted file", "name", name, "size", n)
		td.ExtractedFiles++
	}
}

// extractFile writes the data of e to the file described by segments below dst. The output
// file is closed before the function returns. A failure to close the output file is
// returned if no other error occurred. If the data cannot be written completely, the output
// file is removed.
func (x *Extractor) extractFile(a Archive, e Entry, dst string, segments []string, extractedBytes int64) (n int64, err error) {
	c := x.cfg

	// file mode from the archive
	mode := c.CustomDecompressFileMode()
	if m, ok := e.(modeEntry); ok && !c.DropFileAttributes() {
		mode = m.Mode().Perm()
	}

	path, sink, err := openFile(x.target, dst, segments, mode, c)
	if err != nil {
		return 0, err
	}

	// remaining size
	limit := int64(-1)
	if c.MaxExtractionSize() >= 0 {
		limit = c.MaxExtractionSize() - extractedBytes
	}
	w := newLimitErrorWriter(sink, limit)

	err = func() (err error) {
		defer func() {
			if cerr := sink.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("cannot close file: %w", cerr)
			}
		}()
		return a.ExtractInto(e, w)
	}()
	if err != nil {
		// drop the incomplete output
		if rerr := x.target.Remove(path); rerr != nil {
			c.Logger().Warn("cannot remove incomplete file", "path", path, "error", rerr)
		}
		return w.N, err
	}

	// restore modification time
	if t, ok := e.(modTimeEntry); ok && !c.DropFileAttributes() && !t.ModTime().IsZero() {
		if err := x.target.Chtimes(path, t.ModTime(), t.ModTime()); err != nil {
			c.Logger().Warn("cannot set modification time", "path", path, "error", err)
		}
	}

	return w.N, nil
}

// handleError increases the error counter, sets the latest error and
// decides if extraction should continue.
func handleError(c *Config, td *TelemetryData, msg string, err error) error {

	// increase error counter and set error
	td.ExtractionErrors++
	td.LastExtractionError = err

	// log the error
	c.Logger().Error(msg, "error", err)

	// do not end on error
	if c.ContinueOnError() {
		return nil
	}

	// end extraction on error
	return err
}
