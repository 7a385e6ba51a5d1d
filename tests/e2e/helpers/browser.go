package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coastpass/web-e2e/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

// ErrDriverUnavailable is returned by Setup when the Playwright driver or a
// Chromium build cannot be started on this host. Scenarios skip on it
// instead of failing.
var ErrDriverUnavailable = errors.New("playwright driver unavailable")

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"

// SessionOptions selects the browser profile for one scenario attempt.
type SessionOptions struct {
	// Mobile switches the context to a 375x812 viewport with a mobile
	// user agent and touch enabled.
	Mobile bool
	// Trace records a replayable trace for the whole session.
	Trace bool
}

// BrowserHelper provides browser setup and teardown for tests
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.RunConfig

	// Failed is set by the scenario harness when an assertion failed in
	// the current attempt; TearDown uses it to decide on a screenshot.
	Failed bool

	t       *testing.T
	name    string
	tracing bool
}

// NewBrowserHelper creates a new browser helper instance
func NewBrowserHelper(t *testing.T, name string) *BrowserHelper {
	return &BrowserHelper{
		Config: config.GetConfig(),
		t:      t,
		name:   name,
	}
}

// Setup initializes the browser and creates a new page.
func (b *BrowserHelper) Setup(opts SessionOptions) error {
	var pw *playwright.Playwright
	var err error
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		_ = playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
	}
	pw, err = playwright.Run()
	if err != nil {
		// Retry once after an explicit driver install; some images ship
		// a stale driver version.
		_ = playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
		}
	}
	b.Playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo)),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	}
	if opts.Mobile {
		ctxOpts.Viewport = &playwright.Size{Width: 375, Height: 812}
		ctxOpts.UserAgent = playwright.String(mobileUserAgent)
		ctxOpts.IsMobile = playwright.Bool(true)
		ctxOpts.HasTouch = playwright.Bool(true)
		ctxOpts.DeviceScaleFactor = playwright.Float(3)
	}
	context, err := browser.NewContext(ctxOpts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	if opts.Trace && b.Config.Trace {
		err = context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
			Title:       playwright.String(b.name),
		})
		if err != nil {
			b.t.Logf("Could not start tracing: %v", err)
		} else {
			b.tracing = true
		}
	}

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page
	page.SetDefaultTimeout(float64(b.Config.NavTimeout.Milliseconds()))

	return nil
}

// TearDown closes the browser and cleans up resources. It returns the paths
// of any artifacts written, for the run report.
func (b *BrowserHelper) TearDown() (screenshot, trace string) {
	if (b.Failed || b.t.Failed()) && b.Config.Screenshots && b.Page != nil {
		path := filepath.Join(b.Config.ArtifactsDir, "screenshots",
			fmt.Sprintf("%s_%d.png", sanitizeName(b.name), time.Now().Unix()))
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		if _, err := b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path:     playwright.String(path),
			FullPage: playwright.Bool(true),
		}); err == nil {
			screenshot = path
		}
	}

	if b.tracing && b.Context != nil {
		path := filepath.Join(b.Config.ArtifactsDir, "traces",
			sanitizeName(b.name)+".zip")
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		if err := b.Context.Tracing().Stop(path); err == nil {
			trace = path
		}
	}

	if b.Page != nil {
		b.Page.Close()
	}
	if b.Context != nil {
		b.Context.Close()
	}
	if b.Browser != nil {
		b.Browser.Close()
	}
	if b.Playwright != nil {
		b.Playwright.Stop()
	}
	return screenshot, trace
}

// NavigateTo navigates to a path relative to the base URL and waits for the
// DOM to be ready.
func (b *BrowserHelper) NavigateTo(path string) error {
	_, err := b.Page.Goto(b.Config.BaseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("navigating to %s%s: %w", b.Config.BaseURL, path, err)
	}
	return nil
}

// WaitForNetworkIdle waits until the page has had no network activity for a
// short window. Used as a readiness signal after interactions that trigger
// background fetches.
func (b *BrowserHelper) WaitForNetworkIdle() error {
	return b.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}
