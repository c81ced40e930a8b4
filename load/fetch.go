/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"bennypowers.dev/figmagen/internal/version"
)

const (
	// DefaultTimeout is the maximum time to wait for a remote export.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize is the largest remote export accepted (10 MB).
	DefaultMaxSize int64 = 10 * 1024 * 1024

	// acceptExport prefers the formats the document parser reads.
	acceptExport = "application/json, application/yaml;q=0.9, text/yaml;q=0.9, */*;q=0.1"
)

// ErrFetch indicates that a remote export could not be fetched.
var ErrFetch = errors.New("fetch failed")

// FetchError describes a failed fetch of a remote export. It matches ErrFetch.
type FetchError struct {
	URL string
	// StatusCode is the HTTP status, 0 when no usable response arrived.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrFetch, e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Fetcher fetches a remote export.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches exports over HTTP with a response size limit.
type HTTPFetcher struct {
	maxSize int64
	client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the given maximum response size.
func NewHTTPFetcher(maxSize int64) *HTTPFetcher {
	return &HTTPFetcher{
		maxSize: maxSize,
		client:  &http.Client{},
	}
}

// Fetch downloads the export at url. Failures are returned as *FetchError.
// An HTML response is rejected since it is a page, not an export.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	fail := func(status int, err error) ([]byte, error) {
		return nil, &FetchError{URL: url, StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", acceptExport)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fail(0, fmt.Errorf("timeout: %w", err))
		}
		return fail(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fail(resp.StatusCode, errors.New(resp.Status))
	}
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "text/html" {
		return fail(resp.StatusCode, errors.New("response is an HTML page, not an export"))
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}
	if int64(len(content)) > f.maxSize {
		return fail(resp.StatusCode, fmt.Errorf("response exceeds maximum size of %d bytes", f.maxSize))
	}

	return content, nil
}
