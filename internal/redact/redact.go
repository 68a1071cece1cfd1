// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package redact strips credential values from strings before they reach
// the terminal.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output. The availability checks read the GitHub tokens.
var sensitiveEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
	"BLUEPRINT_GITHUB_TOKEN",
}

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// ResetForTest forgets the cached secrets so tests can change them with
// t.Setenv.
func ResetForTest() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// Token returns the first configured GitHub token, or "".
func Token() string {
	for _, envVar := range []string{"BLUEPRINT_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"} {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
	}
	return ""
}

// String replaces any occurrence of a known sensitive environment variable
// value with "[REDACTED]". Secret values are read once per process.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
