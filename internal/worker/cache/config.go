package cache

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config gathers everything the cache manager needs to decide how to
// handle a request. All handlers share this one policy; nothing is
// re-derived per handler.
type Config struct {
	// Generation is the static-asset cache generation name. It changes
	// with every deployed revision; activation deletes all others.
	Generation string

	// APIGeneration is the dedicated generation for API responses.
	APIGeneration string

	// StaticAssets are precached during install.
	StaticAssets []string

	// OfflineURL is the fallback document served to navigation requests
	// when both network and cache come up empty.
	OfflineURL string

	// AppOrigin is the app's own origin; only its requests are cached
	// with the cache-first strategy.
	AppOrigin string

	// APIOrigin is the recognized story API origin, handled network-first.
	APIOrigin string

	// UncacheableHosts are third-party telemetry/map endpoints that must
	// never reach cache logic.
	UncacheableHosts []string

	// NetworkWait bounds the network attempt on the network-first path
	// before falling back to cache.
	NetworkWait time.Duration
}

// extension and internal browser schemes that are never intercepted.
var excludedSchemes = []string{
	"chrome-extension", "moz-extension", "safari-extension",
	"ms-browser-extension", "chrome-search", "chrome", "moz", "about",
}

// Excluded reports whether the request must bypass every cache strategy
// and go straight to default handling: non-GET methods, extension
// schemes, flagged third-party hosts, and cross-origin requests that are
// not the recognized API origin.
func (c *Config) Excluded(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return true
	}

	u := r.URL
	for _, scheme := range excludedSchemes {
		if u.Scheme == scheme {
			return true
		}
	}

	for _, host := range c.UncacheableHosts {
		if u.Host == host || strings.Contains(u.String(), host) {
			return true
		}
	}

	// Relative URLs are same-origin by definition.
	origin := originOf(u)
	if origin != "" && origin != c.AppOrigin && origin != c.APIOrigin {
		return true
	}

	return false
}

// IsAPI reports whether the URL belongs to the recognized API origin.
func (c *Config) IsAPI(u *url.URL) bool {
	return originOf(u) == c.APIOrigin
}

func originOf(u *url.URL) string {
	if u.Scheme == "" && u.Host == "" {
		// Relative URL: same origin as the app.
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// IsNavigation reports whether the request is a navigation (document)
// request, the only kind that gets the offline fallback page.
func IsNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
