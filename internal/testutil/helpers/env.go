package helpers

import (
	"os"
	"testing"
)

// UnsetEnv removes environment variables for the duration of the test.
// The original values are restored by t.Setenv's cleanup.
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset env var %s: %v", key, err)
		}
	}
}
