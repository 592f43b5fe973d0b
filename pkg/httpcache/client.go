// Package httpcache provides the outbound HTTP client shared by the
// catalog and location lookups: GET responses are cached in memory
// with a TTL, and misses go out through exponential backoff with
// jitter. Callers still make exactly one logical attempt per
// operation; the backoff only absorbs transient transport failures
// inside that attempt.
package httpcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
)

// HTTPClient is the transport interface, satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type entry struct {
	fetchedAt time.Time
	body      []byte
}

// Client is a caching, retrying HTTP GET client.
type Client struct {
	cache  *otter.Cache[string, entry]
	inner  HTTPClient
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a Client. A nil inner client uses http.DefaultClient; a
// nil logger uses slog.Default().
func New(ttl time.Duration, inner HTTPClient, logger *slog.Logger) *Client {
	if inner == nil {
		inner = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := otter.Must(&otter.Options[string, entry]{
		MaximumSize:      1_000,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, entry](ttl),
	})

	return &Client{
		cache:  cache,
		inner:  inner,
		logger: logger,
		ttl:    ttl,
	}
}

func cacheKey(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

// Get fetches the URL and returns the response body, serving repeat
// requests from the cache until the TTL lapses.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	key := cacheKey(url)

	if e, ok := c.cache.GetIfPresent(key); ok {
		if time.Since(e.fetchedAt) < c.ttl {
			c.logger.Debug("cache hit", "url", url)
			return e.body, nil
		}
		c.cache.Invalidate(key)
	}

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, entry{body: body, fetchedAt: time.Now()})
	c.logger.Debug("cache set", "url", url, "size", len(body))
	return body, nil
}

// fetch performs the GET with backoff around transient failures
// (network errors, 429, 5xx). Other HTTP errors fail immediately.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", "worldclock/1.0")

			resp, err := c.inner.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					c.logger.Debug("failed to close response body", "error", err)
				}
			}()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("HTTP %d from %s", resp.StatusCode, url))
			}

			body, err = io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			if err != nil {
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying request", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return body, nil
}
