// Package keyring keeps the postgres connection string in the OS keyring so
// it never has to appear on the command line.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitcore/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Status describes the keyring entry for display
type Status struct {
	Available bool
	Stored    bool
}

// Entry addresses one secret in the keyring
type Entry struct {
	Service string
	Account string
}

// Default is the entry holding the database connection string
func Default() Entry {
	return Entry{Service: constants.AppName, Account: constants.DefaultKeyringUser}
}

// Get returns the stored secret, or ErrNotFound
func (e Entry) Get() (string, error) {
	secret, err := keyring.Get(e.Service, e.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret, replacing any previous value
func (e Entry) Set(secret string) error {
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(e.Service, e.Account, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret, or returns ErrNotFound
func (e Entry) Delete() error {
	if err := keyring.Delete(e.Service, e.Account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Status reports whether the keyring answers and whether the entry exists.
// A read that fails with anything but not-found counts as unavailable.
func (e Entry) Status() Status {
	_, err := keyring.Get(e.Service, e.Account)
	switch {
	case err == nil:
		return Status{Available: true, Stored: true}
	case errors.Is(err, keyring.ErrNotFound):
		return Status{Available: true}
	default:
		return Status{}
	}
}

// GetConnectionString reads the default entry
func GetConnectionString() (string, error) {
	return Default().Get()
}

// SetConnectionString writes the default entry
func SetConnectionString(connStr string) error {
	return Default().Set(connStr)
}

// DeleteConnectionString removes the default entry
func DeleteConnectionString() error {
	return Default().Delete()
}
