// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package params

import (
	"strings"
	"unicode"
)

// Derive fills empty fields with defaults: domain and namespace from the
// title, repository from the detected GitHub remote, and author from the
// repository owner. Fields that are already set are kept.
func Derive(p Params, remoteOwner, remoteRepo string) Params {
	if p.Domain == "" && p.Title != "" {
		p.Domain = SnakeCase(p.Title)
	}
	if p.Namespace == "" && p.Title != "" {
		p.Namespace = CamelCase(p.Title)
	}
	if p.Repository == "" && remoteOwner != "" && remoteRepo != "" {
		p.Repository = remoteOwner + "/" + remoteRepo
	}
	if p.Author == "" {
		if owner, _, ok := strings.Cut(p.Repository, "/"); ok {
			p.Author = owner
		}
	}
	return p
}

// words splits s on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SnakeCase converts a title such as "My Air Purifier" to "my_air_purifier".
// Non-ASCII letters are dropped and a leading digit is prefixed with "ha_".
func SnakeCase(title string) string {
	var parts []string
	for _, w := range words(title) {
		var b strings.Builder
		for _, r := range strings.ToLower(w) {
			if r < unicode.MaxASCII {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			parts = append(parts, b.String())
		}
	}
	out := strings.Join(parts, "_")
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "ha_" + out
	}
	return out
}

// CamelCase converts a title such as "My air purifier" to "MyAirPurifier".
func CamelCase(title string) string {
	var b strings.Builder
	for _, w := range words(title) {
		for i, r := range w {
			if r >= unicode.MaxASCII {
				continue
			}
			if i == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "Ha" + out
	}
	return out
}
