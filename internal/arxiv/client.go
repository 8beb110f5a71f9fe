// Package arxiv fetches paper metadata and PDFs from the arXiv export API.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the arXiv Atom query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// ErrNotFound indicates the requested identifier resolved to no paper.
var ErrNotFound = errors.New("arxiv: paper not found")

// Options configures the client. Values outside the accepted ranges are
// clamped, matching what the API itself tolerates.
type Options struct {
	// PageSize is the maximum number of results per API request.
	// The API's limit is 2000.
	PageSize int

	// Delay is the wait between API requests. arXiv's terms of use ask
	// for no more than one request every three seconds.
	Delay time.Duration

	// Retries is the number of times a failing request is retried
	// before the error is returned.
	Retries int
}

// DefaultOptions mirrors the API client defaults.
func DefaultOptions() Options {
	return Options{
		PageSize: 100,
		Delay:    3 * time.Second,
		Retries:  3,
	}
}

// Clamp normalizes out-of-range option values and logs each adjustment.
func (o Options) Clamp() Options {
	if o.PageSize < 1 {
		log.Warn("Invalid arXiv page size, using 1", "page_size", o.PageSize)
		o.PageSize = 1
	}
	if o.PageSize > 2000 {
		log.Warn("arXiv page size exceeds API limit, using 2000", "page_size", o.PageSize)
		o.PageSize = 2000
	}
	if o.Delay < 0 {
		log.Warn("Negative arXiv request delay, using 0", "delay", o.Delay)
		o.Delay = 0
	}
	if o.Retries < 0 {
		log.Warn("Negative arXiv retry count, using 0", "retries", o.Retries)
		o.Retries = 0
	}
	return o
}

// Client talks to the arXiv export API. Requests are paced by a rate
// limiter so repeated lookups respect the API's terms of use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	opts    Options
}

// NewClient creates a client with the given options.
func NewClient(opts Options) *Client {
	opts = opts.Clamp()

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	return &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// FindByID resolves an arXiv identifier to its paper metadata.
func (c *Client) FindByID(ctx context.Context, id string) (Metadata, error) {
	query := url.Values{}
	query.Set("id_list", id)
	query.Set("max_results", fmt.Sprint(c.opts.PageSize))

	body, err := c.get(ctx, c.baseURL+"?"+query.Encode())
	if err != nil {
		return Metadata{}, fmt.Errorf("query arxiv: %w", err)
	}

	var f feed
	if err := xml.Unmarshal(body, &f); err != nil {
		return Metadata{}, fmt.Errorf("parse arxiv feed: %w", err)
	}

	for _, e := range f.Entries {
		m, ok := e.metadata()
		if ok {
			return m, nil
		}
	}
	return Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// DownloadPDF fetches the paper's PDF into dir and returns the file path.
func (c *Client) DownloadPDF(ctx context.Context, m Metadata, dir string) (string, error) {
	if m.PDFURL == "" {
		return "", fmt.Errorf("no PDF link for %s", m.ID)
	}

	body, err := c.get(ctx, m.PDFURL)
	if err != nil {
		return "", fmt.Errorf("download pdf: %w", err)
	}

	name := strings.ReplaceAll(m.ID, "/", "_") + ".pdf"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	log.Debug("Downloaded PDF", "path", path, "size", humanize.Bytes(uint64(len(body))))
	return path, nil
}

// get performs a rate-limited GET with retry and exponential backoff.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := backoff(attempt - 1)
			log.Debug("Retrying arXiv request", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.getOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// backoff returns the wait before retry attempt n (0-indexed), with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
