// Package chromedp renders company pages in Chrome through the DevTools
// protocol using chromedp.
package chromedp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/supplier"
)

// Ensure Renderer implements supplier.Renderer at compile time.
var _ supplier.Renderer = (*Renderer)(nil)

// Defaults for Renderer.
const (
	DefaultRenderTimeout = 60 * time.Second
	DefaultLoadTimeout   = 15 * time.Second
)

// DefaultBlockedURLs are resource patterns never downloaded while rendering.
// They carry no text.
var DefaultBlockedURLs = []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.woff", "*.woff2", "*.ttf", "*.mp4"}

// Renderer renders pages in tabs of a single Chrome process.
type Renderer struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	headless      bool
	renderTimeout time.Duration
	loadTimeout   time.Duration
	blockedURLs   []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadless controls whether Chrome runs without a visible window.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithRenderTimeout bounds a whole render session. Zero disables the bound.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.renderTimeout = d
	}
}

// WithLoadTimeout bounds the wait for the page load event. A page still
// loading when the bound expires is rendered as it stands.
func WithLoadTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.loadTimeout = d
	}
}

// WithBlockedURLs replaces the resource patterns blocked while rendering.
func WithBlockedURLs(patterns []string) Option {
	return func(r *Renderer) {
		r.blockedURLs = patterns
	}
}

// NewRenderer starts Chrome and returns a Renderer using it.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		headless:      true,
		renderTimeout: DefaultRenderTimeout,
		loadTimeout:   DefaultLoadTimeout,
		blockedURLs:   DefaultBlockedURLs,
	}
	for _, opt := range opts {
		opt(r)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", r.headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// The first Run on a fresh context starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	return r, nil
}

// Render opens url in a new tab and collects its texts and links. The tab
// is closed before Render returns.
func (r *Renderer) Render(ctx context.Context, url string) (*supplier.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "render %s: %v", url, err)
	}

	tabCtx, closeTab := chromedp.NewContext(r.browserCtx)
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	if r.renderTimeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, r.renderTimeout)
		defer cancel()
	}

	if len(r.blockedURLs) > 0 {
		if err := chromedp.Run(tabCtx, network.Enable(), network.SetBlockedURLS(r.blockedURLs)); err != nil {
			return nil, supplier.Errorf(supplier.ERENDER, "open tab: %v", err)
		}
	}

	if err := r.navigate(tabCtx, url); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "navigate %s: %v", url, err)
	}

	var texts, hrefs []string
	if err := chromedp.Run(tabCtx,
		chromedp.Evaluate(supplier.TextsExpression, &texts),
		chromedp.Evaluate(supplier.LinksExpression, &hrefs),
	); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "collect %s: %v", url, err)
	}

	return &supplier.RenderedPage{
		URL:   url,
		Texts: texts,
		Links: supplier.UniqueLinks(hrefs, supplier.DiscoveredLinkLimit),
	}, nil
}

// navigate loads url, tolerating pages whose load event never fires.
func (r *Renderer) navigate(tabCtx context.Context, url string) error {
	if r.loadTimeout <= 0 {
		return chromedp.Run(tabCtx, chromedp.Navigate(url))
	}
	loadCtx, cancel := context.WithTimeout(tabCtx, r.loadTimeout)
	defer cancel()
	err := chromedp.Run(loadCtx, chromedp.Navigate(url))
	if errors.Is(err, context.DeadlineExceeded) && tabCtx.Err() == nil {
		return nil
	}
	return err
}

// Close shuts down the browser.
func (r *Renderer) Close() error {
	r.browserCancel()
	r.allocCancel()
	return nil
}
