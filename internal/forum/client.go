package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/snehankekre/forumtopics/internal/telemetry"
)

// DefaultBaseURL is the forum instance searched when none is configured.
const DefaultBaseURL = "https://discuss.streamlit.io"

// DefaultMaxPages bounds the pagination loop so a misbehaving upstream that
// keeps returning topics cannot spin the client forever.
const DefaultMaxPages = 32

// Cache memoizes raw search responses keyed by request URL. Implementations
// decide TTL; a nil cache disables memoization entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
}

// Client searches a single Discourse forum and aggregates paginated results.
type Client struct {
	baseURL  string
	http     *HTTPClient
	cache    Cache
	maxPages int
	logger   *log.Logger
	metrics  *telemetry.Metrics
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(h *HTTPClient) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithCache memoizes raw page responses in the given cache.
func WithCache(cc Cache) ClientOption {
	return func(c *Client) { c.cache = cc }
}

// WithMaxPages overrides the pagination ceiling.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithMetrics records search counters on the given collector set.
func WithMetrics(m *telemetry.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     NewHTTPClient(0, 0, 0),
		maxPages: DefaultMaxPages,
		logger:   log.New(log.Writer(), "[FORUM] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the forum root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// TopicURL derives the public URL of a topic from the forum root and its id.
func TopicURL(baseURL string, id int64) string {
	return strings.TrimRight(baseURL, "/") + "/t/" + strconv.FormatInt(id, 10)
}

// TopicURL derives the public URL of a topic from its id.
func (c *Client) TopicURL(id int64) string {
	return TopicURL(c.baseURL, id)
}

// Search pages through search.json for query until the upstream returns a
// page without a "topics" key (or the page ceiling is hit), de-duplicates by
// topic id keeping the first occurrence, and returns the first top topics in
// the relevance order the upstream chose. top <= 0 yields an empty result.
func (c *Client) Search(ctx context.Context, query string, top int) ([]Topic, error) {
	start := time.Now()

	var all []Topic
	for page := 0; page < c.maxPages; page++ {
		batch, err := c.fetchPage(ctx, query, page)
		if err != nil {
			c.observe("error", start)
			return nil, fmt.Errorf("search %q page %d: %w", query, page, err)
		}
		if batch.exhausted() {
			break
		}
		all = append(all, *batch.Topics...)
		if page == c.maxPages-1 {
			c.logger.Printf("page ceiling (%d) reached for query %q", c.maxPages, query)
		}
	}

	all = dedupeTopics(all)
	if top < 0 {
		top = 0
	}
	if len(all) > top {
		all = all[:top]
	}

	if len(all) == 0 {
		c.observe("empty", start)
	} else {
		c.observe("ok", start)
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, query string, page int) (*searchPage, error) {
	u := c.searchURL(query, page)

	var body []byte
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, u); ok {
			body = cached
			if c.metrics != nil {
				c.metrics.CacheHits.Inc()
			}
		} else if c.metrics != nil {
			c.metrics.CacheMisses.Inc()
		}
	}

	if body == nil {
		fetched, err := c.http.Get(ctx, u, nil)
		if err != nil {
			return nil, err
		}
		body = fetched
		if c.metrics != nil {
			c.metrics.PagesFetched.Inc()
		}
		if c.cache != nil {
			c.cache.Set(ctx, u, body)
		}
	}

	var p searchPage
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &p, nil
}

func (c *Client) searchURL(query string, page int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	return c.baseURL + "/search.json?" + q.Encode()
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Searches.WithLabelValues(outcome).Inc()
	c.metrics.SearchDuration.Observe(time.Since(start).Seconds())
}
