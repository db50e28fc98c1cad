package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasgen"
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/options"
)

// documentInput represents the three ways a schema graph can be provided
// to a tool. Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema-graph file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a schema-graph document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema-graph document content (JSON or YAML)"`
}

// cacheEntry holds a parsed document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *graph.Document
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore provides a session-scoped cache for parsed documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *graph.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.doc
	}
	return nil
}

// putWithTTL stores a document, evicting the least recently used entry if
// at capacity.
func (c *docCacheStore) putWithTTL(key string, doc *graph.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey creates a cache key for the given input. It returns "" when
// the input cannot be keyed.
func (d documentInput) cacheKey() string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	case d.URL != "":
		return "url:" + d.URL
	}
	return ""
}

// resolve loads the document from whichever input was provided, using the
// cache when enabled.
func (d documentInput) resolve(ctx context.Context) (*graph.Document, error) {
	if count := options.CountSources(d.File != "", d.URL != "", d.Content != ""); count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASGEN_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = d.cacheKey()
		switch {
		case d.File != "":
			ttl = cfg.CacheFileTTL
		case d.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		doc *graph.Document
		err error
	)
	switch {
	case d.File != "":
		doc, err = graph.Load(d.File)
	case d.URL != "":
		doc, err = fetch(ctx, d.URL)
	default:
		doc, err = graph.Parse([]byte(d.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.putWithTTL(key, doc, ttl)
	}
	return doc, nil
}

// fetch downloads and parses a document. Private addresses are refused
// unless OASGEN_ALLOW_PRIVATE_IPS is set.
func fetch(ctx context.Context, url string) (*graph.Document, error) {
	client := http.DefaultClient
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", oasgen.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("document exceeds maximum %d bytes", cfg.MaxInlineSize)
	}
	return graph.Parse(data)
}
