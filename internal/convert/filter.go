package convert

import (
	"sort"
	"strings"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
)

// Enabled keeps only patterns the coding standard has switched on.
func Enabled(patterns []codacy.Pattern) []codacy.Pattern {
	out := make([]codacy.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// Languages returns the sorted lowercase union of languages across patterns.
func Languages(patterns []codacy.Pattern) []string {
	set := make(map[string]struct{})
	for _, p := range patterns {
		for _, lang := range p.Definition.Languages {
			set[strings.ToLower(lang)] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for lang := range set {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// FilterByLanguage keeps patterns whose language list intersects selected.
// An empty selection means all languages. Order-preserving.
func FilterByLanguage(patterns []codacy.Pattern, selected []string) []codacy.Pattern {
	if len(selected) == 0 {
		return patterns
	}
	want := make(map[string]struct{}, len(selected))
	for _, lang := range selected {
		want[strings.ToLower(lang)] = struct{}{}
	}
	out := make([]codacy.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if intersects(p.Definition.Languages, want) {
			out = append(out, p)
		}
	}
	return out
}

func intersects(langs []string, want map[string]struct{}) bool {
	for _, lang := range langs {
		if _, ok := want[strings.ToLower(lang)]; ok {
			return true
		}
	}
	return false
}
