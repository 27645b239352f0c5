package config

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvOrDefault returns the trimmed value of key, or fallback when unset
// or blank.
func GetEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns key parsed as an integer, or fallback when unset or
// unparseable.
func GetEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvBool returns true when key is set to a truthy value ("true", "1").
func GetEnvBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return strings.EqualFold(v, "true") || v == "1"
}
