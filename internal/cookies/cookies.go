// Package cookies reads values out of a raw semicolon-delimited cookie
// string (the document.cookie format) and exposes the anti-forgery token
// the storefront expects on every mutating call.
package cookies

import (
	"net/url"
	"os"
	"strings"

	"storefront-client/internal/domain"
)

// Value scans a semicolon-delimited cookie string for the first
// name=value pair and returns the percent-decoded value. The second
// return is false when the name is absent. Pure, no side effects.
func Value(raw, name string) (string, bool) {
	if raw == "" || name == "" {
		return "", false
	}
	prefix := name + "="
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if !strings.HasPrefix(pair, prefix) {
			continue
		}
		encoded := pair[len(prefix):]
		decoded, err := url.PathUnescape(encoded)
		if err != nil {
			// Malformed escape: hand back the raw value rather than
			// treating the cookie as absent.
			return encoded, true
		}
		return decoded, true
	}
	return "", false
}

// TokenSource holds the session's raw cookie string and yields the
// anti-forgery token for mutating requests.
type TokenSource struct {
	raw        string
	cookieName string
}

// NewTokenSource builds a source over a raw cookie string. An empty
// cookieName falls back to the storefront default.
func NewTokenSource(raw, cookieName string) *TokenSource {
	if cookieName == "" {
		cookieName = domain.DefaultCSRFCookie
	}
	return &TokenSource{raw: raw, cookieName: cookieName}
}

// Token returns the anti-forgery token, or ErrMissingToken when the
// cookie is absent. Callers must not issue a mutating request without it.
func (s *TokenSource) Token() (string, error) {
	token, ok := Value(s.raw, s.cookieName)
	if !ok || token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}

// Raw returns the full cookie string, sent as the Cookie header so the
// server can locate the session cart.
func (s *TokenSource) Raw() string {
	return s.raw
}

// Update replaces the cookie string, e.g. after the server rotated the
// session.
func (s *TokenSource) Update(raw string) {
	s.raw = raw
}

// LoadFile reads a cookie string from a file, trimming trailing
// whitespace. Lets the CLI keep its session out of the environment.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
