package tokenstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/teemow/nextmeet/internal/logging"
)

// renameFile is swapped out in tests to simulate a crash between staging and rename
var renameFile = os.Rename

// Store keeps one token file per scope key inside Dir
type Store struct {
	dir     string
	program string
	logger  *slog.Logger
}

// New creates a Store rooted at dir. Program is used as the file name prefix.
func New(dir, program string) *Store {
	return &Store{
		dir:     dir,
		program: program,
		logger:  logging.WithService(slog.Default(), "tokenstore"),
	}
}

// WithLogger returns a copy of the store that logs to logger
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	if logger == nil {
		return s
	}
	cp := *s
	cp.logger = logging.WithService(logger, "tokenstore")
	return &cp
}

// Path returns the token file path for the given scope key
func (s *Store) Path(scopeKey string) string {
	return filepath.Join(s.dir, s.program+"-token-"+scopeKey+".json")
}

// Get loads the token for scopeKey. A missing file yields (nil, nil).
func (s *Store) Get(scopeKey string) (*Token, error) {
	path := s.Path(scopeKey)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no token file", "path", path)
			return nil, nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, &SerializationError{Path: path, Err: err}
	}

	s.logger.Debug("loaded token",
		"path", path,
		"access_token", logging.SanitizeToken(tok.AccessToken),
		"expiry", tok.Expiry)
	return &tok, nil
}

// Set stores tok for scopeKey. A nil token removes the file; removing a file
// that does not exist is not an error.
func (s *Store) Set(scopeKey string, tok *Token) error {
	if tok == nil {
		return s.Delete(scopeKey)
	}

	path := s.Path(scopeKey)

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return &IOError{Op: "mkdir", Path: s.dir, Err: err}
	}

	if err := writeFileAtomic(path, data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	s.logger.Debug("stored token",
		"path", path,
		"access_token", logging.SanitizeToken(tok.AccessToken),
		"expiry", tok.Expiry)
	return nil
}

// Delete removes the token file for scopeKey
func (s *Store) Delete(scopeKey string) error {
	path := s.Path(scopeKey)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	s.logger.Debug("deleted token", "path", path)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
// The temp file is removed on any failure.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(0600); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return renameFile(tmpName, path)
}
