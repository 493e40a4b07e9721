package testutil

import (
	"os"
	"testing"
)

// MustSetTestEnvironment sets GO_ENV to test for the duration of t so that
// anything reading configuration picks the test profile
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}
