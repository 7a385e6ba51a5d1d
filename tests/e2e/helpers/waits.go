package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const pollInterval = 250 * time.Millisecond

// WaitVisible waits until the locator resolves to a visible element.
func WaitVisible(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitAttached waits until the locator resolves to an element attached to
// the DOM, visible or not.
func WaitAttached(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitGone waits until the locator resolves to no element or a hidden one.
func WaitGone(loc playwright.Locator, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitForTextChange polls the locator until its text differs from previous,
// and returns the new text. This replaces fixed sleeps between an
// interaction and its expected effect; the page updates asynchronously and
// only the observed change is a reliable signal.
func WaitForTextChange(loc playwright.Locator, previous string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		text, err := loc.InnerText()
		if err == nil {
			if t := strings.TrimSpace(text); t != strings.TrimSpace(previous) && t != "" {
				return t, nil
			}
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("text did not change from %q within %s", previous, timeout)
		}
		time.Sleep(pollInterval)
	}
}
