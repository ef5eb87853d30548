// SPDX-License-Identifier: MIT

// Package fetch materializes playlist and EPG sources from URLs or
// local paths, transparently decompressing gzip payloads.
package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	userAgent = "epgweaver/1.0"
	// Upstream guides can be large but a hard cap keeps a hostile
	// source from exhausting memory.
	maxPayload = 100 * 1024 * 1024
)

var gzipMagic = []byte{0x1f, 0x8b}

// Loader fetches source documents. The zero value is not usable; call New.
type Loader struct {
	client *http.Client
}

func New() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Load returns the fully materialized bytes of src, which is either an
// http(s) URL or a local file path. Gzip payloads (by .gz suffix or
// magic bytes) are decompressed before returning.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = l.download(ctx, src)
	} else {
		data, err = os.ReadFile(filepath.Clean(src)) // #nosec G304 -- path comes from caller configuration
	}
	if err != nil {
		return nil, err
	}
	return gunzipIfNeeded(data)
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, res.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(res.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func gunzipIfNeeded(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(io.LimitReader(zr, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return out, nil
}
