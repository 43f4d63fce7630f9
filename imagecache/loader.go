package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
)

// ErrHTTPStatus is returned by HTTPLoader for non-2xx responses.
var ErrHTTPStatus = errors.New("imagecache: unexpected HTTP status")

// HTTPLoader loads images with HTTP GET requests.
type HTTPLoader struct {
	// Client is used for requests. Nil means http.DefaultClient.
	Client *http.Client

	// Header is added to every request, e.g. a session cookie.
	Header http.Header
}

// Load implements Loader.
func (l HTTPLoader) Load(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imagecache: %w", err)
	}
	for k, vs := range l.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagecache: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s for %s", ErrHTTPStatus, resp.Status, url)
	}
	return DecodeConfig(resp.Body, url)
}

// FSLoader loads images from a file system. URLs are slash-separated paths
// relative to the root of FS; a leading slash is ignored.
type FSLoader struct {
	FS fs.FS
}

// Load implements Loader.
func (l FSLoader) Load(ctx context.Context, url string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(url, "/")
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("imagecache: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f, url)
}
