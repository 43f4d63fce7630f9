package imagecache

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zabbix/svgmap"
	"github.com/zabbix/svgmap/cache"
)

// task is one Preload request.
type task struct {
	urls       map[string]string
	onComplete func()
}

// result is a settled load.
type result struct {
	key   string
	image *Image
	err   error
}

type load struct {
	key, url string
}

// Cache preloads images in serialized batches.
//
// Cache must be used from a single goroutine: Preload, Get and Wait are
// not safe for concurrent use. Loads run concurrently in the background
// and only hand their results back through Wait.
type Cache struct {
	loader Loader
	config config
	images *cache.Cache[string, *Image]

	queue      []task
	onComplete func()
	pending    int
	settled    chan result
	completing bool
}

// New creates a Cache that fetches images with loader.
func New(loader Loader, opts ...Option) *Cache {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Cache{
		loader: loader,
		config: config,
		images: cache.New[string, *Image](0),
	}
}

// Preload resolves every key of urls and calls onComplete once all of
// them have settled. Keys resolved by an earlier batch are not loaded
// again; values that are not usable URLs resolve to a nil image at once.
//
// When a batch is already in flight the request is queued and Preload
// returns false. Otherwise the batch starts and Preload returns true; if
// nothing needs loading onComplete runs before Preload returns.
func (c *Cache) Preload(urls map[string]string, onComplete func()) bool {
	t := task{urls: urls, onComplete: onComplete}
	if c.pending > 0 || c.completing {
		c.queue = append(c.queue, t)
		svgmap.Logger().Debug("imagecache: batch queued", "keys", len(urls), "queued", len(c.queue))
		return false
	}
	c.start(t)
	return true
}

// Get returns the resolved image for key. A key that failed to load is
// reported as found with a nil image.
func (c *Cache) Get(key string) (*Image, bool) {
	return c.images.Get(key)
}

// Pending returns the number of loads of the batch in flight.
func (c *Cache) Pending() int {
	return c.pending
}

// Queued returns the number of batches waiting to start.
func (c *Cache) Queued() int {
	return len(c.queue)
}

// Len returns the number of resolved keys, failed ones included.
func (c *Cache) Len() int {
	return c.images.Len()
}

// Stats returns lookup statistics of the resolved image store.
func (c *Cache) Stats() cache.Stats {
	return c.images.Stats()
}

// Wait settles loads and runs completion callbacks until no batch is in
// flight or queued, or ctx is done. Loads already started are still
// counted and settle on a later Wait.
func (c *Cache) Wait(ctx context.Context) error {
	for c.pending > 0 {
		select {
		case r := <-c.settled:
			c.settle(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Poll settles the loads that have already finished without blocking
// and reports whether the cache is idle.
func (c *Cache) Poll() bool {
	for c.pending > 0 {
		select {
		case r := <-c.settled:
			c.settle(r)
		default:
			return false
		}
	}
	return true
}

func (c *Cache) start(t task) {
	c.onComplete = t.onComplete

	keys := make([]string, 0, len(t.urls))
	for k := range t.urls {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var loads []load
	for _, key := range keys {
		if c.images.Contains(key) {
			continue
		}
		u := t.urls[key]
		if !usableURL(u) {
			c.images.Set(key, nil)
			continue
		}
		loads = append(loads, load{key: key, url: u})
	}

	if len(loads) == 0 {
		c.complete()
		return
	}

	c.pending = len(loads)
	c.settled = make(chan result, len(loads))
	svgmap.Logger().Debug("imagecache: batch started", "keys", len(keys), "loads", len(loads))
	go c.run(loads, c.settled)
}

// run loads one batch with bounded concurrency, posting every outcome.
func (c *Cache) run(loads []load, out chan<- result) {
	var g errgroup.Group
	g.SetLimit(c.config.concurrency)
	for _, l := range loads {
		g.Go(func() error {
			ctx := context.Background()
			if c.config.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, c.config.timeout)
				defer cancel()
			}
			img, err := c.loader.Load(ctx, l.url)
			out <- result{key: l.key, image: img, err: err}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Cache) settle(r result) {
	if r.err != nil {
		svgmap.Logger().Warn("imagecache: load failed", "key", r.key, "error", r.err)
		r.image = nil
	}
	c.images.Set(r.key, r.image)
	c.pending--
	if c.pending == 0 {
		c.complete()
	}
}

// complete runs the batch callback and starts the next queued batch.
func (c *Cache) complete() {
	fn := c.onComplete
	c.onComplete = nil
	svgmap.Logger().Debug("imagecache: batch complete", "queued", len(c.queue))

	if fn != nil {
		c.completing = true
		fn()
		c.completing = false
	}
	if len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.start(next)
	}
}

// usableURL reports whether s can be handed to a Loader.
func usableURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}
