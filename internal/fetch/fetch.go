// Package fetch retrieves player pages over HTTP, through a headless browser,
// or from local files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is sent with every plain request unless overridden.
const DefaultUserAgent = "Mozilla/5.0"

// ErrEmptyURL is returned for a blank target, before any network call.
var ErrEmptyURL = errors.New("fetch: empty URL")

// FetchError reports a failed retrieval. StatusCode is set when the server
// answered with something other than 200.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Fetcher.
type Options struct {
	UserAgent        string
	Timeout          time.Duration // 0 means no timeout
	CloudflareBypass bool
	Render           bool
	RenderTimeout    time.Duration
}

// Fetcher retrieves raw page HTML. One GET per call, no retries.
type Fetcher struct {
	client *resty.Client
	opts   Options
}

// New builds a Fetcher.
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = 30 * time.Second
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	return &Fetcher{client: client, opts: opts}
}

// IsURL reports whether target is an http(s) URL rather than a file path.
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// Fetch returns the raw HTML of target, which is a URL or a local file.
func (f *Fetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyURL
	}

	if IsURL(target) {
		if f.opts.Render {
			return f.fetchRender(ctx, target)
		}
		return f.fetchPlain(ctx, target)
	}
	if f.opts.Render {
		slog.Debug("Render flag ignored for non-URL target", "target", target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	return data, nil
}

func (f *Fetcher) fetchPlain(ctx context.Context, target string) ([]byte, error) {
	start := time.Now()
	res, err := f.client.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	slog.Debug("Response received", "url", target, "status", res.StatusCode(), "duration", time.Since(start))
	if res.StatusCode() != http.StatusOK {
		return nil, &FetchError{URL: target, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

func (f *Fetcher) fetchRender(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.RenderTimeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(f.opts.UserAgent))
	ctx, cancel = chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(ctx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			_ = chromedp.Run(waitCtx,
				chromedp.WaitVisible("h1", chromedp.ByQuery),
			)
			return nil
		}),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("render browser: %w", err)}
	}
	return []byte(htmlContent), nil
}
