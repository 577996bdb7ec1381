package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitcore/internal/keyring"
	"github.com/julianstephens/habitcore/internal/logger"
	"github.com/julianstephens/habitcore/internal/storage"
	"github.com/julianstephens/habitcore/internal/storage/postgres"
)

var hints = []struct {
	target error
	hint   string
}{
	{postgres.ErrEmbeddedCredentials, "store the password with 'habitcore keyring set', HABITCORE_DB_CONNECTION or .pgpass"},
	{keyring.ErrKeyringUnavailable, "set HABITCORE_DB_CONNECTION instead"},
	{storage.ErrNotFound, "check the name with 'habitcore habit list'"},
}

// Hint returns a suggested next step for known errors, or ""
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v (hint: %s)", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
