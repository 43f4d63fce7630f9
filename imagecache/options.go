package imagecache

import "time"

// Option configures a Cache.
type Option func(*config)

type config struct {
	concurrency int
	timeout     time.Duration
}

func defaultConfig() config {
	return config{
		concurrency: 4,
		timeout:     30 * time.Second,
	}
}

// WithConcurrency limits the number of simultaneous loads of a batch.
// Values below 1 select the default of 4.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 4
		}
		c.concurrency = n
	}
}

// WithTimeout bounds each load. Zero disables the per-load timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}
