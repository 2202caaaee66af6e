// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	unrar "github.com/hashicorp/go-unrar"
	"golang.org/x/text/encoding/ianaindex"
)

// CLI are the cli parameters for gounrar binary
type CLI struct {
	Archive                    string           `arg:"" name:"archive" help:"Path or url (s3://, http://, https://) to archive. (\"-\" for STDIN)"`
	ContinueOnError            bool             `short:"C" help:"Continue extraction on error."`
	ContinueOnUnsupportedFiles bool             `short:"S" help:"Skip unsupported files (e.g. symlinks) instead of failing."`
	Destination                string           `arg:"" name:"destination" default:"." help:"Output directory."`
	DropFileAttributes         bool             `short:"D" help:"Drop file attributes and modification times of extracted files."`
	FollowSymlinks             bool             `short:"F" help:"[Dangerous!] Follow symlinks to directories during extraction."`
	LegacyEncoding             string           `short:"e" default:"IBM437" help:"IANA name of the character set of non-Unicode entry names."`
	MaxFiles                   int64            `optional:"" default:"100000" help:"Maximum files and directories that are extracted before stop. (disable check: -1)"`
	MaxExtractionSize          int64            `optional:"" default:"1073741824" help:"Maximum extraction size that allowed is (in bytes). (disable check: -1)"`
	MaxExtractionTime          int64            `optional:"" default:"60" help:"Maximum time that an extraction should take (in seconds). (disable check: -1)"`
	MaxInputSize               int64            `optional:"" default:"1073741824" help:"Maximum input size that allowed is (in bytes). (disable check: -1)"`
	Metrics                    bool             `short:"M" optional:"" default:"false" help:"Print metrics to log after extraction."`
	NoOverwrite                bool             `short:"N" help:"Fail instead of overwriting existing files."`
	Pattern                    []string         `short:"P" optional:"" name:"pattern" help:"Extracted objects need to match shell file name pattern."`
	S3Endpoint                 string           `optional:"" help:"Endpoint of an S3-compatible service."`
	S3PathStyle                bool             `optional:"" help:"Use path-style addressing for S3."`
	S3Region                   string           `optional:"" help:"Region of the S3 bucket."`
	Verbose                    bool             `short:"v" optional:"" help:"Verbose logging."`
	Version                    kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run the entrypoint into gounrar as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("A secure rar extraction utility"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	f := newFetcher(S3Config{
		Region:         cli.S3Region,
		Endpoint:       cli.S3Endpoint,
		ForcePathStyle: cli.S3PathStyle,
	}, cli.MaxInputSize)

	if err := execute(ctx, cli, logger, os.Stdin, f); err != nil {
		logger.Error("error during extraction", "err", err)
		os.Exit(-1)
	}
}

// execute extracts the archive given in cli. The archive is read from stdin if its path is "-"
// and downloaded with f if it is a url.
func execute(ctx context.Context, cli CLI, logger *slog.Logger, stdin io.Reader, f *fetcher) error {
	cfg, err := cli.config(logger)
	if err != nil {
		return err
	}

	if cli.MaxExtractionTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, (time.Second * time.Duration(cli.MaxExtractionTime)))
		defer cancel()
	}

	x := unrar.NewExtractor(unrar.NewTargetDisk(), cfg)

	// download remote archives
	if isRemote(cli.Archive) {
		logger.Info("downloading archive", "archive", cli.Archive)
		path, cleanup, err := f.fetch(ctx, cli.Archive)
		if err != nil {
			return &unrar.OpenError{Path: cli.Archive, Err: err}
		}
		defer cleanup()

		// report the remote location instead of the temporary copy
		err = x.ExtractArchive(ctx, path, cli.Destination)
		var oerr *unrar.OpenError
		if errors.As(err, &oerr) {
			oerr.Path = cli.Archive
		}
		return err
	}

	if cli.Archive != "-" {
		return x.ExtractArchive(ctx, cli.Archive, cli.Destination)
	}

	// buffer stdin, the archive needs random access
	a, err := readArchive(bufio.NewReader(stdin), cfg)
	if err != nil {
		return &unrar.OpenError{Path: cli.Archive, Err: err}
	}
	return x.Extract(ctx, a, cli.Destination)
}

// config assembles the extraction configuration from the cli parameters
func (cli CLI) config(logger *slog.Logger) (*unrar.Config, error) {
	enc, err := ianaindex.IANA.Encoding(cli.LegacyEncoding)
	if err != nil {
		return nil, fmt.Errorf("unknown legacy encoding %q: %w", cli.LegacyEncoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported legacy encoding %q", cli.LegacyEncoding)
	}

	// setup metrics hook
	metricsToLog := func(ctx context.Context, td *unrar.TelemetryData) {
		if cli.Metrics {
			logger.Info("extraction finished", "metrics", td)
		}
	}

	// process cli params
	return unrar.NewConfig(
		unrar.WithContinueOnError(cli.ContinueOnError),
		unrar.WithContinueOnUnsupportedFiles(cli.ContinueOnUnsupportedFiles),
		unrar.WithDropFileAttributes(cli.DropFileAttributes),
		unrar.WithInsecureTraverseSymlinks(cli.FollowSymlinks),
		unrar.WithLegacyNameEncoding(enc),
		unrar.WithLogger(logger),
		unrar.WithMaxExtractionSize(cli.MaxExtractionSize),
		unrar.WithMaxFiles(cli.MaxFiles),
		unrar.WithMaxInputSize(cli.MaxInputSize),
		unrar.WithOverwrite(!cli.NoOverwrite),
		unrar.WithPatterns(cli.Pattern...),
		unrar.WithTelemetryHook(metricsToLog),
	), nil
}

// readArchive reads an archive of at most cfg.MaxInputSize() bytes into memory.
func readArchive(r io.Reader, cfg *unrar.Config) (unrar.Archive, error) {
	if cfg.MaxInputSize() >= 0 {
		r = io.LimitReader(r, cfg.MaxInputSize()+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	if cfg.MaxInputSize() >= 0 && int64(len(data)) > cfg.MaxInputSize() {
		return nil, unrar.ErrMaxInputSizeExceeded
	}
	return unrar.NewRarArchive(bytes.NewReader(data), int64(len(data)), cfg)
}
