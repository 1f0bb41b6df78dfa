package convert

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Semgrep_javascript.insecure-document-method", "insecure-document-method"},
		{"python.lang.security.audit.eval-detected", "eval-detected"},
		{"NoDots", "nodots"},
		{"Weird  Spaces & Symbols!!", "weird-spaces-symbols"},
		{"UPPER_case.Mixed_ID", "mixed-id"},
		{"trailing-separator-", "trailing-separator"},
		{"--leading", "leading"},
		{"", "unknown-rule"},
		{"...", "unknown-rule"},
		{"a.b.c.1234", "1234"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
