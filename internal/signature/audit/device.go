package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceLabel turns a raw User-Agent header into a short display string like
// "Chrome on Mac OS X". Best effort: unknown agents still produce something
// readable rather than the raw header.
func DeviceLabel(rawUserAgent string) string {
	if rawUserAgent == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUserAgent)

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}

	return strings.TrimSpace(browser + " on " + os)
}
