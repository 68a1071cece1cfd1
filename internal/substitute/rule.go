// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package substitute

import (
	"errors"
	"fmt"
	"strings"
)

// Rule is one literal find-and-replace step.
type Rule struct {
	Label   string
	Search  string
	Replace string
}

// ErrEmptySearch is returned for a rule with nothing to search for.
var ErrEmptySearch = errors.New("search string is empty")

// Validate checks that the rule can be applied.
func (r Rule) Validate() error {
	if r.Search == "" {
		return fmt.Errorf("rule %q: %w", r.Label, ErrEmptySearch)
	}
	return nil
}

// ValidateOrder checks every rule and rejects any ordering in which an
// earlier rule's search string occurs inside a later rule's search string;
// the earlier rule would corrupt the later rule's target before it runs.
func ValidateOrder(rules []Rule) error {
	var errs []string
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		for _, later := range rules[i+1:] {
			if later.Search != "" && strings.Contains(later.Search, r.Search) {
				errs = append(errs, fmt.Sprintf("rule %q (%q) must run after rule %q (%q), which contains it",
					r.Label, r.Search, later.Label, later.Search))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid substitution order:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
