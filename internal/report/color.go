// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/fatih/color"
)

// Shared color printers.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorDim    = color.New(color.Faint)
)

// ColorVerdict colors a classification verdict name.
func ColorVerdict(val string) string {
	switch val {
	case "pristine-template":
		return colorGreen.Sprint(val)
	case "already-initialized":
		return colorYellow.Sprint(val)
	case "indeterminate":
		return colorRed.Sprint(val)
	default:
		return val
	}
}

// ColorStatus colors an availability status.
func ColorStatus(val string) string {
	switch val {
	case "available":
		return colorGreen.Sprint(val)
	case "taken":
		return colorRed.Sprint(val)
	default:
		return colorDim.Sprint(val)
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// colorCount colors a count: 0 is dim, >0 is yellow.
func colorCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return colorDim.Sprint(s)
	}
	return colorYellow.Sprint(s)
}
