// Package fetch downloads remote archives to local files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc receives the running byte count during a download.
// total is -1 when the server does not report a content length.
type ProgressFunc func(written, total int64)

// Client downloads files over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a download client. Timeouts are controlled by the
// caller's context rather than a fixed client timeout, since archive
// downloads can be large.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// Download fetches url into dest. The file is written to a temporary
// sibling first and renamed into place, so an interrupted download never
// leaves a truncated dest behind. progress may be nil.
func (c *Client) Download(ctx context.Context, url, dest string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".partial-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	var w io.Writer = tmp
	if progress != nil {
		w = io.MultiWriter(tmp, &progressWriter{fn: progress, total: resp.ContentLength})
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("renaming into %s: %w", dest, err)
	}
	return nil
}

// progressWriter counts bytes and reports them through fn.
type progressWriter struct {
	fn      ProgressFunc
	written int64
	total   int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	p.fn(p.written, p.total)
	return len(b), nil
}
