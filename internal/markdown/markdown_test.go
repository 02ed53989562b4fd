// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "heading gets an id",
			input: "# Getting started",
			want:  []string{"<h1", `id="getting-started"`, "Getting started</h1>"},
		},
		{
			name:  "gfm table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "script is stripped",
			input:   "hello <script>alert(1)</script>",
			want:    []string{"hello"},
			notWant: []string{"<script", "alert(1)</script>"},
		},
		{
			name:    "event handlers are stripped",
			input:   `<a href="https://example.com" onclick="evil()">x</a>`,
			want:    []string{`href="https://example.com"`},
			notWant: []string{"onclick"},
		},
		{
			name:    "javascript links are dropped",
			input:   "[x](javascript:alert(1))",
			notWant: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, got)
				}
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}
