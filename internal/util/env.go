package util

import "os"

// EnvOrDefault reads an environment variable, falling back to the given
// value when it is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
