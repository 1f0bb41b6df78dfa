package convert

import "strings"

// Slugify normalizes a pattern identifier into Semgrep's rule-id
// convention: lowercase, with runs of non-alphanumeric characters
// collapsed into a single hyphen. The tool prefix (anything up to the
// last dot) is dropped first, since Codacy pattern IDs are namespaced.
func Slugify(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		id = id[i+1:]
	}
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	s := b.String()
	if s == "" {
		return "unknown-rule"
	}
	return s
}
