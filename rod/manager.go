package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxSessions is the number of render sessions a browser serves
// before it is relaunched.
const DefaultMaxSessions = 50

// ErrManagerClosed is returned when a page is requested after Close.
var ErrManagerClosed = errors.New("browser manager closed")

// BrowserManager owns the Chrome process behind render sessions. Each
// session gets its own page. Once a browser has served MaxSessions pages it
// is relaunched, but only while no session is open, so a long-running
// process does not accumulate Chrome's per-page memory growth.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	open     int
	closed   bool

	maxSessions int
	headless    bool
	bin         string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxSessions sets how many sessions a browser serves before relaunch.
func WithMaxSessions(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxSessions = n
	}
}

// WithHeadless controls whether the browser runs without a visible window.
// Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithBrowserBin uses the Chrome binary at path instead of the one rod
// finds or downloads.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches Chrome. Close must be called to stop it.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxSessions: DefaultMaxSessions,
		headless:    true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l
	return bm, nil
}

// OpenPage opens a blank page for one render session. The returned release
// func closes the page and must be called exactly once; later calls are
// no-ops. The page is not bound to any context so that it can be closed
// after the caller's context has expired.
func (bm *BrowserManager) OpenPage() (*rod.Page, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, ErrManagerClosed
	}
	if bm.served >= bm.maxSessions && bm.open == 0 {
		bm.relaunch()
	}

	page, err := bm.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, fmt.Errorf("open page: %w", err)
	}
	bm.served++
	bm.open++

	release := sync.OnceFunc(func() {
		_ = page.Close()
		bm.mu.Lock()
		bm.open--
		bm.mu.Unlock()
	})
	return page, release, nil
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// PID returns the process ID of the running browser, or zero once closed.
func (bm *BrowserManager) PID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-renderer-backgrounding").
		Set("no-first-run").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Leakless(true).
		Headless(bm.headless)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect to browser: %w", err)
	}
	return browser, l, nil
}

// relaunch replaces the browser. The old one is kept if the new launch
// fails. Must be called with mu held and no open sessions.
func (bm *BrowserManager) relaunch() {
	browser, l, err := bm.launch()
	if err != nil {
		return
	}
	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, l
	bm.served = 0
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
