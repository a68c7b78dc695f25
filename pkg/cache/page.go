package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// Page is a rendered response kept for HTTP revalidation.
type Page struct {
	Status int
	Header http.Header
	Body   []byte
	ETag   string
	// Tags link the page to the cached data it was rendered from.
	Tags    []string
	expires time.Time
}

// PageCache holds rendered responses by request path.
type PageCache struct {
	mu    sync.Mutex
	pages map[string]Page
	now   func() time.Time
}

func NewPageCache() *PageCache {
	return newPageCache(time.Now)
}

func newPageCache(now func() time.Time) *PageCache {
	return &PageCache{pages: make(map[string]Page), now: now}
}

type pageTagsKey struct{}

type pageTags struct {
	mu   sync.Mutex
	tags []string
}

// TagPage links the page being rendered for ctx to the data tags it used,
// so invalidating one of them also drops the page. Outside a cached route
// it does nothing.
func TagPage(ctx context.Context, tags ...string) {
	pt, ok := ctx.Value(pageTagsKey{}).(*pageTags)
	if !ok {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	for _, t := range tags {
		if !slices.Contains(pt.tags, t) {
			pt.tags = append(pt.tags, t)
		}
	}
}

func (p *PageCache) get(key string) (Page, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	page, ok := p.pages[key]
	if !ok {
		return Page{}, false
	}
	if !p.now().Before(page.expires) {
		delete(p.pages, key)
		return Page{}, false
	}
	return page, true
}

func (p *PageCache) put(key string, page Page, ttl time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	page.expires = p.now().Add(ttl)
	p.pages[key] = page
}

// Purge drops pages whose path equals one of paths, including every
// query-string variant of it.
func (p *PageCache) Purge(paths []string) int {
	if len(paths) == 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for key := range p.pages {
		path, _, _ := strings.Cut(key, "|")
		path, _, _ = strings.Cut(path, "?")
		for _, want := range paths {
			if path == want {
				delete(p.pages, key)
				n++
				break
			}
		}
	}
	return n
}

// PurgeTags drops pages carrying one of tags.
func (p *PageCache) PurgeTags(tags []string) int {
	if len(tags) == 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for key, page := range p.pages {
		if slices.ContainsFunc(page.Tags, func(t string) bool { return slices.Contains(tags, t) }) {
			delete(p.pages, key)
			n++
		}
	}
	return n
}

func (p *PageCache) Sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	n := 0
	for key, page := range p.pages {
		if !now.Before(page.expires) {
			delete(p.pages, key)
			n++
		}
	}
	return n
}

func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

type pageRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *pageRecorder) WriteHeader(status int) {
	r.status = status
}

func (r *pageRecorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

// Middleware caches successful GET responses of a namespace for its
// Revalidate lifetime, sets Cache-Control and ETag, and answers matching
// If-None-Match requests with 304. Only headers the handler itself set are
// replayed. Pages are tagged with the namespace plus whatever the handler
// reports through TagPage.
func (p *PageCache) Middleware(namespace string) func(http.Handler) http.Handler {
	meta := GetCacheMeta(Key{namespace})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || meta.Revalidate <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI() + "|" + r.Header.Get("Accept-Language")
			page, ok := p.get(key)
			if !ok {
				before := w.Header().Clone()
				tags := &pageTags{tags: []string{namespace}}
				rec := &pageRecorder{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), pageTagsKey{}, tags)))

				page = Page{
					Status: rec.status,
					Header: written(before, w.Header()),
					Body:   rec.body.Bytes(),
					ETag:   ETag(rec.body.Bytes()),
					Tags:   tags.tags,
				}
				if rec.status == http.StatusOK {
					p.put(key, page, meta.Revalidate)
				}
			}

			header := w.Header()
			for k, v := range page.Header {
				header[k] = v
			}
			if page.Status == http.StatusOK {
				header.Set("Cache-Control", meta.CacheControl())
				header.Set("ETag", page.ETag)
				if match := r.Header.Get("If-None-Match"); match != "" && match == page.ETag {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
			w.WriteHeader(page.Status)
			w.Write(page.Body)
		})
	}
}

// written returns the headers of after that differ from before.
func written(before, after http.Header) http.Header {
	out := make(http.Header)
	for k, v := range after {
		if !slices.Equal(before[k], v) {
			out[k] = slices.Clone(v)
		}
	}
	return out
}
