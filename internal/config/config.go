package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/teemow/nextmeet/internal/logging"
	"github.com/teemow/nextmeet/internal/meeting"
)

// ProgramName prefixes the config directory and the token file names
const ProgramName = "nextmeet"

// Environment variables
const (
	EnvConfigDir        = "NEXTMEET_CONFIG_DIR"
	EnvClientSecretFile = "NEXTMEET_CLIENT_SECRET_FILE"
	EnvClientID         = "NEXTMEET_CLIENT_ID"
	EnvClientSecret     = "NEXTMEET_CLIENT_SECRET"
	EnvAuthURL          = "NEXTMEET_AUTH_URL"
	EnvTokenURL         = "NEXTMEET_TOKEN_URL"
)

// EnvFile is read from the config directory before the environment is consulted
const EnvFile = ".env"

// Options are the raw values collected from the command line
type Options struct {
	Dir              string
	ClientSecretFile string
	Port             int
	TimeOnly         bool
	Join             bool
	LogLevel         string
}

// Config holds the settings resolved once at startup
type Config struct {
	Dir              string
	ClientSecretFile string
	Port             int
	Mode             meeting.OutputMode
	LogLevel         slog.Level
}

// DefaultDir returns $NEXTMEET_CONFIG_DIR or the XDG config directory for nextmeet
func DefaultDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, ProgramName)
}

// LoadEnvFile loads dir/.env into the process environment. Variables that are
// already set keep their value and a missing file is ignored.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &Error{Key: "env file", Err: err}
	}
	if err := godotenv.Load(path); err != nil {
		return &Error{Key: "env file", Err: fmt.Errorf("failed to load %s: %w", path, err)}
	}
	return nil
}

// Load resolves opts against the environment
func Load(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir()
	}

	if err := LoadEnvFile(dir); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, &Error{Key: "log level", Err: err}
	}

	if opts.Port < 0 || opts.Port > 65535 {
		return nil, &Error{Key: "port", Err: fmt.Errorf("%d is out of range", opts.Port)}
	}

	secretFile := strings.TrimSpace(opts.ClientSecretFile)
	if secretFile == "" {
		secretFile = strings.TrimSpace(os.Getenv(EnvClientSecretFile))
	}

	return &Config{
		Dir:              dir,
		ClientSecretFile: secretFile,
		Port:             opts.Port,
		Mode:             meeting.ResolveMode(opts.TimeOnly, opts.Join),
		LogLevel:         level,
	}, nil
}
