// Package walink extracts canonical product identifiers from the various
// WhatsApp share link formats merchants paste into the sync station.
package walink

import (
	"regexp"
	"strings"
)

var (
	waMePattern    = regexp.MustCompile(`wa\.me/p/([^/]+)`)
	catalogPattern = regexp.MustCompile(`catalog/([^/]+)`)
	apiLinkPattern = regexp.MustCompile(`product_id=([^&]+)`)
)

// ExtractProductID returns the canonical product identifier embedded in raw.
// Supported formats:
//   - https://wa.me/p/PRODUCT_ID/BUSINESS_NUMBER
//   - https://wa.me/p/PRODUCT_ID
//   - https://www.whatsapp.com/catalog/PRODUCT_ID
//   - https://api.whatsapp.com/...?product_id=PRODUCT_ID
//   - PRODUCT_ID (raw id or product code)
//
// It never fails: inputs that match no known format are returned trimmed.
func ExtractProductID(raw string) string {
	switch {
	case strings.Contains(raw, "wa.me/p/"):
		if m := waMePattern.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	case strings.Contains(raw, "whatsapp.com/catalog/"):
		if m := catalogPattern.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	case strings.Contains(raw, "api.whatsapp.com"):
		if m := apiLinkPattern.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return strings.TrimSpace(raw)
}

// IsShareLink reports whether raw looks like a URL rather than a plain
// code or numeric id.
func IsShareLink(raw string) bool {
	return strings.Contains(raw, "http")
}
