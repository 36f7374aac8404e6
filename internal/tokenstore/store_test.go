package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testToken() *Token {
	return &Token{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
		Scopes:       []string{"https://www.googleapis.com/auth/calendar.readonly"},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a", "b"})
	want := testToken()

	require.NoError(t, store.Set(key, want))

	got, err := store.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.Equal(t, want.TokenType, got.TokenType)
	assert.True(t, want.Expiry.Equal(got.Expiry), "expiry %v != %v", got.Expiry, want.Expiry)
	assert.Equal(t, want.Scopes, got.Scopes)
}

func TestStore_GetMissingIsAbsent(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")

	got, err := store.Get(ScopeKey([]string{"a"}))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetMissingDirectoryIsAbsent(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does", "not", "exist"), "nextmeet")

	got, err := store.Get(ScopeKey([]string{"a"}))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a"})

	// nothing stored yet
	require.NoError(t, store.Set(key, nil))

	require.NoError(t, store.Set(key, testToken()))
	require.NoError(t, store.Set(key, nil))
	require.NoError(t, store.Set(key, nil))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = os.Stat(store.Path(key))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStore_CorruptFile(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a"})

	require.NoError(t, os.WriteFile(store.Path(key), []byte("{not json"), 0600))

	got, err := store.Get(key)
	assert.Nil(t, got)
	require.Error(t, err)

	var serr *SerializationError
	require.True(t, errors.As(err, &serr), "expected SerializationError, got %T", err)
	assert.Equal(t, store.Path(key), serr.Path)
}

func TestStore_GetIOError(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a"})

	// a directory where the file should be cannot be read as a file
	require.NoError(t, os.Mkdir(store.Path(key), 0700))

	_, err := store.Get(key)
	require.Error(t, err)

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr), "expected IOError, got %T", err)
}

func TestStore_OverwriteShorterToken(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a"})

	long := testToken()
	long.AccessToken = "a-very-long-access-token-that-takes-up-a-lot-of-room-in-the-file"
	require.NoError(t, store.Set(key, long))

	short := &Token{AccessToken: "x"}
	require.NoError(t, store.Set(key, short))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "x", got.AccessToken)
	assert.Empty(t, got.RefreshToken)
}

func TestStore_InterruptedWriteKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "nextmeet")
	key := ScopeKey([]string{"a"})

	previous := testToken()
	require.NoError(t, store.Set(key, previous))

	orig := renameFile
	renameFile = func(oldpath, newpath string) error {
		return errors.New("simulated crash before rename")
	}
	t.Cleanup(func() { renameFile = orig })

	err := store.Set(key, &Token{AccessToken: "new"})
	require.Error(t, err)
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))

	got, err := store.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, previous.AccessToken, got.AccessToken)

	// the staged temp file is cleaned up
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_FilePermissions(t *testing.T) {
	store := New(t.TempDir(), "nextmeet")
	key := ScopeKey([]string{"a"})
	require.NoError(t, store.Set(key, testToken()))

	info, err := os.Stat(store.Path(key))
	require.NoError(t, err)
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("token file mode = %v, want no group/other access", info.Mode().Perm())
	}
}

func TestStore_Path(t *testing.T) {
	store := New("/tmp/cfg", "nextmeet")
	assert.Equal(t, filepath.Join("/tmp/cfg", "nextmeet-token-abc.json"), store.Path("abc"))
}

func TestScopeKey(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		same bool
	}{
		{"same order", []string{"x", "y"}, []string{"x", "y"}, true},
		{"different order", []string{"x", "y"}, []string{"y", "x"}, true},
		{"duplicates ignored", []string{"x", "x", "y"}, []string{"y", "x"}, true},
		{"different scopes", []string{"x"}, []string{"y"}, false},
		{"no concatenation collision", []string{"ab", "c"}, []string{"a", "bc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScopeKey(tt.a) == ScopeKey(tt.b)
			if got != tt.same {
				t.Errorf("ScopeKey(%v) == ScopeKey(%v) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestTokenConversion(t *testing.T) {
	assert.Nil(t, FromOAuth2(nil, nil))
	assert.Nil(t, (*Token)(nil).OAuth2())

	src := &oauth2.Token{
		AccessToken:  "a",
		RefreshToken: "r",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	stored := FromOAuth2(src, []string{"s"})
	assert.Equal(t, []string{"s"}, stored.Scopes)

	back := stored.OAuth2()
	assert.Equal(t, src.AccessToken, back.AccessToken)
	assert.Equal(t, src.RefreshToken, back.RefreshToken)
	assert.Equal(t, src.TokenType, back.TokenType)
	assert.True(t, src.Expiry.Equal(back.Expiry))
}
