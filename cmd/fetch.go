// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-cleanhttp"
	unrar "github.com/hashicorp/go-unrar"
)

// S3Downloader is an interface for downloading objects from S3.
type S3Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*manager.Downloader)) (int64, error)
}

// S3Config contains the configuration of the S3 client.
type S3Config struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

// NewS3Downloader creates a downloader with the default AWS credential chain.
func NewS3Downloader(ctx context.Context, cfg S3Config) (S3Downloader, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)

	// S3-compatible services, e.g. MinIO
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return manager.NewDownloader(s3.NewFromConfig(awsCfg, s3Opts...)), nil
}

// fetcher downloads remote archives into local temporary files, since archives are
// read with random access.
type fetcher struct {
	httpClient   *http.Client
	s3           func(ctx context.Context) (S3Downloader, error)
	maxInputSize int64
}

// newFetcher creates a fetcher with a pooled http client and a lazily created S3 downloader.
func newFetcher(s3cfg S3Config, maxInputSize int64) *fetcher {
	return &fetcher{
		httpClient: cleanhttp.DefaultPooledClient(),
		s3: func(ctx context.Context) (S3Downloader, error) {
			return NewS3Downloader(ctx, s3cfg)
		},
		maxInputSize: maxInputSize,
	}
}

// isRemote returns true if location is an s3, http or https url.
func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "s3", "http", "https":
		return true
	}
	return false
}

// fetch downloads the archive at location into a temporary file and returns its path.
// The returned function removes the file.
func (f *fetcher) fetch(ctx context.Context, location string) (string, func(), error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", nil, fmt.Errorf("invalid archive location: %w", err)
	}

	tmp, err := os.CreateTemp("", "gounrar-*.rar")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temporary file: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	switch u.Scheme {
	case "s3":
		err = f.fetchS3(ctx, u, tmp)
	case "http", "https":
		err = f.fetchHTTP(ctx, location, tmp)
	default:
		err = fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

// fetchS3 downloads s3://bucket/key into w.
func (f *fetcher) fetchS3(ctx context.Context, u *url.URL, w *os.File) error {
	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return fmt.Errorf("invalid s3 location %s", u)
	}

	d, err := f.s3(ctx)
	if err != nil {
		return err
	}

	dst := &limitErrorWriterAt{W: w, L: f.maxInputSize}
	if _, err := d.Download(ctx, dst, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// fetchHTTP downloads location into w.
func (f *fetcher) fetchHTTP(ctx context.Context, location string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", location, resp.Status)
	}

	// check announced size
	if f.maxInputSize >= 0 && resp.ContentLength > f.maxInputSize {
		return unrar.ErrMaxInputSizeExceeded
	}

	var r io.Reader = resp.Body
	if f.maxInputSize >= 0 {
		r = io.LimitReader(resp.Body, f.maxInputSize+1)
	}
	n, err := io.Copy(w, r)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	if f.maxInputSize >= 0 && n > f.maxInputSize {
		return unrar.ErrMaxInputSizeExceeded
	}
	return nil
}

// limitErrorWriterAt is a wrapper around an io.WriterAt that returns
// ErrMaxInputSizeExceeded for writes beyond the limit.
type limitErrorWriterAt struct {
	W io.WriterAt // underlying writer
	L int64       // limit, negative values disable the limit
}

// WriteAt writes p at off, if the write stays within the limit.
func (l *limitErrorWriterAt) WriteAt(p []byte, off int64) (int, error) {
	if l.L >= 0 && off+int64(len(p)) > l.L {
		return 0, unrar.ErrMaxInputSizeExceeded
	}
	return l.W.WriteAt(p, off)
}
