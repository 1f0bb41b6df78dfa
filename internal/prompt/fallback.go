package prompt

import "github.com/codacy-acme/semgrep-extractor/internal/codacy"

// Fallback answers from flag values when present and prompts for the
// rest, mirroring the per-value flag-or-ask behavior of the CLI.
type Fallback struct {
	Flags       Static
	Interactive Selector
}

func (f Fallback) SelectProvider() (string, error) {
	if f.Flags.Provider != "" {
		return f.Flags.SelectProvider()
	}
	return f.Interactive.SelectProvider()
}

func (f Fallback) SelectOrganization() (string, error) {
	if f.Flags.Organization != "" {
		return f.Flags.SelectOrganization()
	}
	return f.Interactive.SelectOrganization()
}

func (f Fallback) SelectStandard(standards []codacy.Standard) (codacy.Standard, error) {
	if f.Flags.Standard != "" {
		return f.Flags.SelectStandard(standards)
	}
	return f.Interactive.SelectStandard(standards)
}

func (f Fallback) SelectLanguages(available []string) ([]string, error) {
	if len(f.Flags.Languages) > 0 {
		return f.Flags.SelectLanguages(available)
	}
	return f.Interactive.SelectLanguages(available)
}
