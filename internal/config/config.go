// Package config reads runtime settings from the environment with
// explicit fallbacks. All knobs of the service are plain env vars.
package config

import (
	"os"
	"strings"
)

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
