package helpers

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Selectors for the /map page. The map widget is third-party (Mapbox GL or
// Leaflet depending on rollout), so surface and zoom selectors cover both.
const (
	mapSurfaceSelector = "#venue-map, .mapboxgl-map, .leaflet-container, [data-testid='venue-map']"
	zoomInSelector     = ".mapboxgl-ctrl-zoom-in, .leaflet-control-zoom-in, button[aria-label='Zoom in']"
	zoomOutSelector    = ".mapboxgl-ctrl-zoom-out, .leaflet-control-zoom-out, button[aria-label='Zoom out']"
	filterSelector     = "[data-category], .category-filter button, button.filter-chip"
	venueCountSelector = "h2[data-testid='venue-count'], h2:has-text('venues'), .venue-count"
	loadingSelector    = ".loading, .spinner, [data-loading='true']"
	menuToggleSelector = "button[aria-label*='menu' i], .hamburger, [data-testid='menu-toggle']"
	joinLinkSelector   = "a:has-text('Join now'), a:has-text('Join')"
)

// MapPage wraps locators for the venue map page so scenarios stay free of
// raw selectors.
type MapPage struct {
	browser *BrowserHelper
}

// NewMapPage creates a page object bound to the helper's current page.
func NewMapPage(browser *BrowserHelper) *MapPage {
	return &MapPage{browser: browser}
}

// Open navigates to /map.
func (m *MapPage) Open() error {
	if err := m.browser.NavigateTo("/map"); err != nil {
		return fmt.Errorf("opening map page: %w", err)
	}
	return nil
}

// Header returns the page header.
func (m *MapPage) Header() playwright.Locator {
	return m.browser.Page.Locator("header")
}

// Surface returns the map rendering surface.
func (m *MapPage) Surface() playwright.Locator {
	return m.browser.Page.Locator(mapSurfaceSelector).First()
}

// Filters returns all category filter controls.
func (m *MapPage) Filters() playwright.Locator {
	return m.browser.Page.Locator(filterSelector)
}

// Filter returns the category filter with the given label.
func (m *MapPage) Filter(label string) playwright.Locator {
	return m.browser.Page.Locator(filterSelector).
		Filter(playwright.LocatorFilterOptions{HasText: label}).First()
}

// VenueCount returns the "Show N venues" heading.
func (m *MapPage) VenueCount() playwright.Locator {
	return m.browser.Page.Locator(venueCountSelector).First()
}

// ZoomIn and ZoomOut return the map zoom controls, which may not exist on
// every widget rollout.
func (m *MapPage) ZoomIn() playwright.Locator {
	return m.browser.Page.Locator(zoomInSelector).First()
}

func (m *MapPage) ZoomOut() playwright.Locator {
	return m.browser.Page.Locator(zoomOutSelector).First()
}

// LoadingIndicator returns the initial loading indicator, if the page shows
// one while venue data is fetched.
func (m *MapPage) LoadingIndicator() playwright.Locator {
	return m.browser.Page.Locator(loadingSelector).First()
}

// MenuToggle returns the mobile menu toggle control.
func (m *MapPage) MenuToggle() playwright.Locator {
	return m.browser.Page.Locator(menuToggleSelector)
}

// JoinLink returns the "Join now" call-to-action link.
func (m *MapPage) JoinLink() playwright.Locator {
	return m.browser.Page.Locator(joinLinkSelector).First()
}

// NavLink returns header navigation links matching the given accessible
// name.
func (m *MapPage) NavLink(name string) playwright.Locator {
	return m.browser.Page.Locator(fmt.Sprintf("header nav a:has-text('%s')", name))
}

// HorizontalOverflow reports whether the document overflows the viewport
// horizontally.
func (m *MapPage) HorizontalOverflow() (bool, error) {
	result, err := m.browser.Page.Evaluate(
		`() => document.documentElement.scrollWidth > window.innerWidth`)
	if err != nil {
		return false, fmt.Errorf("checking horizontal overflow: %w", err)
	}
	overflow, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected overflow check result %T", result)
	}
	return overflow, nil
}
