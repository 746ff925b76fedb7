package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Fetcher struct {
	client *resty.Client
	cache  *Cache
}

// NewFetcher returns a fetcher backed by resty. cache may be nil.
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		client: resty.New(),
		cache:  cache,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if body, ok, err := f.cache.Get(url); err != nil {
			return nil, err
		} else if ok {
			return body, nil
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status())
	}

	body := resp.Body()
	if f.cache != nil {
		if err := f.cache.Put(url, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// IsRemote reports whether source is fetched over http(s).
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader over source, fetching http(s) URLs with fetcher and
// reading anything else from disk.
func Open(ctx context.Context, source string, fetcher *Fetcher) (io.ReadCloser, error) {
	if IsRemote(source) {
		if fetcher == nil {
			fetcher = NewFetcher(nil)
		}
		body, err := fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return os.Open(source)
}

func LoadSource(ctx context.Context, source string, fetcher *Fetcher, schema Schema) (*Dataset, error) {
	r, err := Open(ctx, source, fetcher)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d, err := Load(r, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	return d, nil
}
