// Package config resolves the Odoo connection settings from flags,
// environment variables, an optional .clorc dotenv file, and interactive
// prompts, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables recognized for connection settings.
const (
	EnvInstance = "OD_INSTANCE"
	EnvDatabase = "OD_DATABASE"
	EnvUsername = "OD_USERNAME"
	EnvPassword = "OD_PASSWORD"
)

// RCName is the dotenv file holding OD_* declarations. DefaultHost is used
// when no instance URL is given anywhere.
const (
	RCName      = ".clorc"
	DefaultHost = "http://localhost:8069"
)

// Credentials are the four settings needed to reach an Odoo instance.
type Credentials struct {
	Instance string
	Database string
	Username string
	Password Secret
}

// DefaultRCPath returns $HOME/.clorc.
func DefaultRCPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, RCName)
}

// LoadRC loads OD_* declarations from a dotenv file into the process
// environment. Variables already set in the environment win, matching
// dotenv semantics. A missing file is not an error; the caller decides
// whether to warn.
func LoadRC(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return true, nil
}

// Prompter asks the user for a missing setting. AskSecret must not echo.
type Prompter interface {
	Ask(prompt string) (string, error)
	AskSecret(prompt string) (string, error)
}

// Resolve fills the credentials in precedence order: an explicitly set
// field wins, then the corresponding OD_* environment variable, then an
// interactive prompt. The instance URL never prompts; it falls back to
// DefaultHost like the original tooling.
func Resolve(flags Credentials, prompter Prompter) (Credentials, error) {
	out := flags

	if out.Instance == "" {
		out.Instance = os.Getenv(EnvInstance)
	}
	if out.Instance == "" {
		out.Instance = DefaultHost
	}

	var err error
	if out.Database == "" {
		out.Database = os.Getenv(EnvDatabase)
	}
	if out.Database == "" {
		if out.Database, err = prompter.Ask("Enter the Database Name"); err != nil {
			return out, err
		}
	}

	if out.Username == "" {
		out.Username = os.Getenv(EnvUsername)
	}
	if out.Username == "" {
		if out.Username, err = prompter.Ask("Enter your Username"); err != nil {
			return out, err
		}
	}

	if !out.Password.IsSet() {
		out.Password = Secret(os.Getenv(EnvPassword))
	}
	if !out.Password.IsSet() {
		raw, err := prompter.AskSecret("Enter your Password (or API-Key)")
		if err != nil {
			return out, err
		}
		out.Password = Secret(raw)
	}

	return out, nil
}
