// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns display names into file-name-safe slugs.
package slug

import (
	"regexp"
	"strings"
)

var (
	// unsafe matches anything that isn't a letter, digit, space, hyphen or underscore.
	unsafe = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separators collapses runs of whitespace and underscores.
	separators = regexp.MustCompile(`[\s_]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given string.
// Example: "My WordPress_Site 2026!" → "my-wordpress-site-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = unsafe.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FileName returns Generate(name) with ext appended, falling back to
// "template" when the name has no usable characters.
func FileName(name, ext string) string {
	base := Generate(name)
	if base == "" {
		base = "template"
	}
	return base + ext
}
