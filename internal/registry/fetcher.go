// Package registry fetches the app registry, caches it for the life of the
// process, and resolves entries into launch commands.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fleuristes/fleur/internal/messages"
)

// DefaultURL is the public fleur app registry.
const DefaultURL = "https://raw.githubusercontent.com/fleuristes/app-registry/refs/heads/main/apps.json"

// maxRegistryBytes caps the registry response size.
const maxRegistryBytes = 8 << 20

// Options configures a Fetcher.
type Options struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
	Logger  *zap.Logger
}

// Fetcher retrieves the registry once and serves the cached copy afterwards.
// Failed fetches are not cached.
type Fetcher struct {
	url    string
	client *http.Client
	logger *zap.Logger

	mu     sync.Mutex
	cached []byte
	group  singleflight.Group
}

// NewFetcher returns a Fetcher for opts.URL.
func NewFetcher(opts Options) (*Fetcher, error) {
	if opts.URL == "" {
		return nil, errors.New(messages.RegistryURLRequired)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{url: opts.URL, client: client, logger: logger}, nil
}

// URL returns the registry location.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch returns the registry document as raw JSON. Concurrent callers share a
// single request.
func (f *Fetcher) Fetch(ctx context.Context) (json.RawMessage, error) {
	if cached := f.load(); cached != nil {
		return cached, nil
	}
	v, err, _ := f.group.Do(f.url, func() (any, error) {
		if cached := f.load(); cached != nil {
			return []byte(cached), nil
		}
		body, err := f.download(ctx)
		if err != nil {
			f.logger.Error("failed to fetch app registry", zap.String("url", f.url), zap.Error(err))
			return nil, err
		}
		f.mu.Lock()
		f.cached = body
		f.mu.Unlock()
		f.logger.Info(fmt.Sprintf(messages.RegistryFetchedFmt, len(body)), zap.String("url", f.url))
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return append(json.RawMessage(nil), v.([]byte)...), nil
}

// Apps fetches and validates the registry entries.
func (f *Fetcher) Apps(ctx context.Context) ([]App, error) {
	raw, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseApps(raw)
}

// Invalidate drops the cached registry so the next Fetch goes to the network.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	f.cached = nil
	f.mu.Unlock()
}

func (f *Fetcher) load() json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cached == nil {
		return nil
	}
	return append(json.RawMessage(nil), f.cached...)
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.RegistryRequestFmt, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "fleur")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: f.url, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRegistryBytes))
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}
	if !json.Valid(data) {
		var probe any
		return nil, &ParseError{URL: f.url, Err: json.Unmarshal(data, &probe)}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, &ParseError{URL: f.url, Err: err}
	}
	return compact.Bytes(), nil
}
