package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
	"github.com/codacy-acme/semgrep-extractor/internal/semgrep"
)

// PlaceholderPattern marks rules whose source pattern carries no literal
// expression; these must be completed by hand after conversion.
const PlaceholderPattern = "{}"

// severityTable maps Codacy severities to Semgrep's vocabulary. Severities
// missing from the table degrade to WARNING rather than failing the run.
var severityTable = map[string]string{
	"info":     semgrep.SeverityInfo,
	"minor":    semgrep.SeverityInfo,
	"warning":  semgrep.SeverityWarning,
	"medium":   semgrep.SeverityWarning,
	"error":    semgrep.SeverityError,
	"critical": semgrep.SeverityError,
}

// Mapper converts source patterns into Semgrep rules. It carries the slug
// collision table, so one Mapper instance must see every pattern of a run;
// per-record mapping is otherwise pure and deterministic.
type Mapper struct {
	selected map[string]struct{}
	taken    map[string]int
}

// NewMapper creates a mapper for the given language selection. An empty
// selection keeps every source language.
func NewMapper(selectedLanguages []string) *Mapper {
	sel := make(map[string]struct{}, len(selectedLanguages))
	for _, lang := range selectedLanguages {
		sel[strings.ToLower(lang)] = struct{}{}
	}
	return &Mapper{selected: sel, taken: make(map[string]int)}
}

// Map converts one pattern. Total over well-formed input: unknown
// severities default, empty descriptions fall back to the title, and slug
// collisions get a numeric suffix in first-seen order.
func (m *Mapper) Map(p codacy.Pattern) semgrep.Rule {
	return semgrep.Rule{
		ID:        m.ruleID(p.Definition.ID),
		Languages: m.languages(p.Definition.Languages),
		Message:   message(p.Definition),
		Severity:  MapSeverity(p.Severity),
		Pattern:   pattern(p.Definition),
	}
}

// MapAll converts a pattern sequence in order.
func (m *Mapper) MapAll(patterns []codacy.Pattern) []semgrep.Rule {
	rules := make([]semgrep.Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, m.Map(p))
	}
	return rules
}

// MapSeverity translates a source severity into Semgrep's vocabulary,
// defaulting to WARNING for anything unrecognized.
func MapSeverity(severity string) string {
	if s, ok := severityTable[strings.ToLower(strings.TrimSpace(severity))]; ok {
		return s
	}
	return semgrep.SeverityWarning
}

func (m *Mapper) ruleID(sourceID string) string {
	slug := Slugify(sourceID)
	n := m.taken[slug]
	m.taken[slug] = n + 1
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n+1)
}

func (m *Mapper) languages(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		lang = strings.ToLower(lang)
		if len(m.selected) > 0 {
			if _, ok := m.selected[lang]; !ok {
				continue
			}
		}
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func message(def codacy.PatternDefinition) string {
	if msg := strings.TrimSpace(def.Description); msg != "" {
		return msg
	}
	return strings.TrimSpace(def.Title)
}

func pattern(def codacy.PatternDefinition) string {
	if def.Pattern != "" {
		return def.Pattern
	}
	return PlaceholderPattern
}
