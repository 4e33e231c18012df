package cookies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storefront-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	raw := "sessionid=abc123; csrftoken=tok%2Fvalue; theme=dark"

	tests := []struct {
		name   string
		raw    string
		cookie string
		want   string
		found  bool
	}{
		{"first pair", raw, "sessionid", "abc123", true},
		{"middle pair decoded", raw, "csrftoken", "tok/value", true},
		{"last pair", raw, "theme", "dark", true},
		{"absent name", raw, "missing", "", false},
		{"empty string", "", "sessionid", "", false},
		{"empty name", raw, "", "", false},
		{"no partial name match", "session=short; sessionid=long", "sessionid", "long", true},
		{"whitespace around pairs", "  a=1 ;  b=2  ", "b", "2", true},
		{"empty value", "empty=; other=x", "empty", "", true},
		{"first match wins", "dup=one; dup=two", "dup", "one", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.raw, tt.cookie)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueMalformedEscape(t *testing.T) {
	// A broken percent-sequence keeps the raw value instead of dropping
	// the cookie.
	got, ok := Value("bad=%zz", "bad")
	require.True(t, ok)
	assert.Equal(t, "%zz", got)
}

func TestTokenSource(t *testing.T) {
	src := NewTokenSource("sessionid=abc; csrftoken=deadbeef", "")

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", token)
	assert.Equal(t, "sessionid=abc; csrftoken=deadbeef", src.Raw())
}

func TestTokenSourceMissing(t *testing.T) {
	src := NewTokenSource("sessionid=abc", "csrftoken")

	_, err := src.Token()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingToken))
}

func TestTokenSourceCustomCookieName(t *testing.T) {
	src := NewTokenSource("xsrf=tok", "xsrf")

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestTokenSourceUpdate(t *testing.T) {
	src := NewTokenSource("csrftoken=old", "")
	src.Update("csrftoken=new")

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte("csrftoken=tok; sessionid=abc\n"), 0o600))

	raw, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csrftoken=tok; sessionid=abc", raw)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
