// Package rod renders company pages in Chrome using go-rod.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/supplier"
	"github.com/go-rod/rod"
)

// Ensure Renderer implements supplier.Renderer at compile time.
var _ supplier.Renderer = (*Renderer)(nil)

// Defaults for Renderer.
const (
	DefaultRenderTimeout = 60 * time.Second
	DefaultLoadTimeout   = 15 * time.Second
)

// Renderer renders pages in a browser owned by a BrowserManager.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager       *BrowserManager
	renderTimeout time.Duration
	loadTimeout   time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

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

// NewRenderer creates a Renderer that opens pages in manager's browser.
// Closing the Renderer closes the manager.
func NewRenderer(manager *BrowserManager, opts ...Option) *Renderer {
	r := &Renderer{
		manager:       manager,
		renderTimeout: DefaultRenderTimeout,
		loadTimeout:   DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to url in a fresh page and collects its texts and links.
// The page is closed before Render returns.
func (r *Renderer) Render(ctx context.Context, url string) (*supplier.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "render %s: %v", url, err)
	}

	if r.renderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.renderTimeout)
		defer cancel()
	}

	session, release, err := r.manager.OpenPage()
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "render %s: %v", url, err)
	}
	defer release()

	page := session.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "navigate %s: %v", url, err)
	}

	if err := r.waitLoad(page); err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "load %s: %v", url, err)
	}

	texts, err := evalStrings(page, supplier.TextsExpression)
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "collect texts %s: %v", url, err)
	}

	hrefs, err := evalStrings(page, supplier.LinksExpression)
	if err != nil {
		return nil, supplier.Errorf(supplier.ERENDER, "collect links %s: %v", url, err)
	}

	return &supplier.RenderedPage{
		URL:   url,
		Texts: texts,
		Links: supplier.UniqueLinks(hrefs, supplier.DiscoveredLinkLimit),
	}, nil
}

// waitLoad waits for the load event, tolerating pages that never finish.
func (r *Renderer) waitLoad(page *rod.Page) error {
	if r.loadTimeout <= 0 {
		return page.WaitLoad()
	}
	bounded := page.Timeout(r.loadTimeout)
	defer bounded.CancelTimeout()

	err := bounded.WaitLoad()
	if errors.Is(err, context.DeadlineExceeded) && page.GetContext().Err() == nil {
		return nil
	}
	return err
}

// Close releases the browser.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

func evalStrings(page *rod.Page, expression string) ([]string, error) {
	res, err := page.Eval(`() => ` + expression)
	if err != nil {
		return nil, err
	}
	items := res.Value.Arr()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Str())
	}
	return out, nil
}
