package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// KeywordPattern defines the valid keyword format: alphanumeric, hyphens, underscores.
var KeywordPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxKeywordLength bounds keyword names.
const MaxKeywordLength = 100

// reservedKeywords are paths the server routes itself, so a keyword by the
// same name could never be reached.
var reservedKeywords = map[string]bool{
	"keywords": true,
	"metrics":  true,
	"healthz":  true,
	"readyz":   true,
	"static":   true,
}

// IsReservedKeyword reports whether keyword collides with a server route.
func IsReservedKeyword(keyword string) bool {
	return reservedKeywords[strings.ToLower(keyword)]
}

// ValidateKeyword checks if a keyword matches the allowed pattern.
func ValidateKeyword(keyword string) bool {
	if keyword == "" || len(keyword) > MaxKeywordLength {
		return false
	}
	return KeywordPattern.MatchString(keyword)
}

// NormalizeKeyword lowercases a keyword so lookups are case-insensitive.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// ParseKeywordPath splits a request path segment into a keyword and whether
// the keyword's list page was asked for. A leading dot ("/.wiki") or a
// trailing slash ("wiki/") selects the list page instead of a redirect.
func ParseKeywordPath(segment string) (keyword string, listPage bool) {
	segment = strings.TrimPrefix(segment, "/")
	switch {
	case strings.HasPrefix(segment, "."):
		return NormalizeKeyword(strings.TrimPrefix(segment, ".")), true
	case strings.HasSuffix(segment, "/"):
		return NormalizeKeyword(strings.TrimSuffix(segment, "/")), true
	}
	return NormalizeKeyword(segment), false
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
