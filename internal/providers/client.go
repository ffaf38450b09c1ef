// Package providers holds the HTTP clients for the three upstream data
// sources: the league platform, the projections source and the MLB stats
// API. Every client shares the same plumbing: a circuit breaker per
// provider, an optional Redis-backed response cache, and structured logs
// on each fetch.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/cache"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// httpClient is the shared fetch layer under every provider client.
type httpClient struct {
	provider string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	cache    types.CacheProvider
	log      *logrus.Entry
}

func newHTTPClient(provider string, timeout time.Duration, cacheProvider types.CacheProvider) *httpClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		provider: provider,
		client:   &http.Client{Timeout: timeout},
		breaker:  newProviderBreaker(provider),
		cache:    cacheProvider,
		log:      logger.WithService(provider),
	}
}

type fetchRequest struct {
	url     string
	params  url.Values
	headers map[string]string
	cookies []*http.Cookie
	// cacheParams enables response caching when non-nil.
	cacheParams map[string]string
}

// getJSON fetches a URL through the breaker and decodes the body into
// dest, consulting the response cache first when the request is cacheable.
func (c *httpClient) getJSON(ctx context.Context, req fetchRequest, dest interface{}) error {
	log := logger.WithProviderContext(c.provider, req.url)

	var cacheKey string
	if c.cache != nil && req.cacheParams != nil {
		cacheKey = cache.BuildKey(c.provider, req.cacheParams)
		var cached json.RawMessage
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			log.WithField("key", cacheKey).Debug("Provider cache hit")
			return json.Unmarshal(cached, dest)
		}
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, req)
	})
	if err != nil {
		log.WithError(err).Error("Provider fetch failed")
		return err
	}
	raw := body.([]byte)

	if cacheKey != "" {
		if err := c.cache.Set(ctx, cacheKey, json.RawMessage(raw), 0); err != nil {
			log.WithError(err).Debug("Provider cache store failed")
		}
	}
	return json.Unmarshal(raw, dest)
}

func (c *httpClient) fetch(ctx context.Context, req fetchRequest) ([]byte, error) {
	target := req.url
	if len(req.params) > 0 {
		target = fmt.Sprintf("%s?%s", req.url, req.params.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", defaultUserAgent)
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	for _, cookie := range req.cookies {
		httpReq.AddCookie(cookie)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", c.provider, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
