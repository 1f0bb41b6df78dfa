// Package prompt resolves the operator's provider, organization, standard
// and language choices, either interactively or from flag values.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
)

// ErrInputClosed is returned when the interactive input ends mid-prompt.
var ErrInputClosed = errors.New("prompt: input closed")

// Selector supplies the choices an export run needs. Implementations:
// Terminal (interactive) and Static (flag-driven).
type Selector interface {
	SelectProvider() (string, error)
	SelectOrganization() (string, error)
	SelectStandard(standards []codacy.Standard) (codacy.Standard, error)
	SelectLanguages(available []string) ([]string, error)
}

// Terminal prompts on w and reads answers from r, re-asking on invalid
// input. Reader and writer are injectable so tests can script a session.
type Terminal struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{scanner: bufio.NewScanner(r), w: w}
}

func (t *Terminal) readLine() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("prompt: read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(t.scanner.Text()), nil
}

func (t *Terminal) SelectProvider() (string, error) {
	codes := make([]string, 0, len(codacy.Providers))
	for code := range codacy.Providers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Fprintln(t.w, "\nAvailable providers:")
	for _, code := range codes {
		fmt.Fprintf(t.w, "  %s: %s\n", code, codacy.Providers[code])
	}
	for {
		fmt.Fprintf(t.w, "\nEnter the provider code (%s): ", strings.Join(codes, "/"))
		answer, err := t.readLine()
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if _, ok := codacy.Providers[answer]; ok {
			return answer, nil
		}
		fmt.Fprintln(t.w, "Invalid provider. Please try again.")
	}
}

func (t *Terminal) SelectOrganization() (string, error) {
	for {
		fmt.Fprint(t.w, "Enter the Codacy organization name: ")
		answer, err := t.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(t.w, "Organization name cannot be empty.")
	}
}

func (t *Terminal) SelectStandard(standards []codacy.Standard) (codacy.Standard, error) {
	fmt.Fprintln(t.w, "\nAvailable coding standards:")
	for i, s := range standards {
		fmt.Fprintf(t.w, "%d. %s\n", i+1, s.Name)
	}
	for {
		fmt.Fprint(t.w, "\nEnter the number of the coding standard you want to use: ")
		answer, err := t.readLine()
		if err != nil {
			return codacy.Standard{}, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(t.w, "Please enter a valid number.")
			continue
		}
		if n < 1 || n > len(standards) {
			fmt.Fprintln(t.w, "Invalid selection. Please try again.")
			continue
		}
		return standards[n-1], nil
	}
}

func (t *Terminal) SelectLanguages(available []string) ([]string, error) {
	fmt.Fprintln(t.w, "\nAvailable languages:")
	for i, lang := range available {
		fmt.Fprintf(t.w, "%d. %s\n", i+1, lang)
	}
	fmt.Fprint(t.w, "\nEnter the numbers of the languages you want to include (comma-separated, empty for all): ")
	answer, err := t.readLine()
	if err != nil {
		return nil, err
	}
	var selected []string
	for _, field := range strings.Split(answer, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(available) {
			continue
		}
		selected = append(selected, available[n-1])
	}
	return selected, nil
}

// Static answers from pre-supplied values without prompting. Missing
// required values are errors, so automation fails fast instead of hanging.
type Static struct {
	Provider     string
	Organization string
	Standard     string   // standard ID or name
	Languages    []string // empty means all
}

func (s Static) SelectProvider() (string, error) {
	code := strings.ToLower(s.Provider)
	if code == "" {
		return "", errors.New("provider is required (use --provider)")
	}
	if _, ok := codacy.Providers[code]; !ok {
		return "", fmt.Errorf("unknown provider %q (valid: gh, ghe, bb, gl)", s.Provider)
	}
	return code, nil
}

func (s Static) SelectOrganization() (string, error) {
	if s.Organization == "" {
		return "", errors.New("organization is required (use --organization)")
	}
	return s.Organization, nil
}

func (s Static) SelectStandard(standards []codacy.Standard) (codacy.Standard, error) {
	if s.Standard == "" {
		return codacy.Standard{}, errors.New("standard is required (use --standard)")
	}
	for _, std := range standards {
		if std.ID == s.Standard || strings.EqualFold(std.Name, s.Standard) {
			return std, nil
		}
	}
	return codacy.Standard{}, fmt.Errorf("coding standard %q not found", s.Standard)
}

func (s Static) SelectLanguages(available []string) ([]string, error) {
	if len(s.Languages) == 0 {
		return nil, nil
	}
	known := make(map[string]struct{}, len(available))
	for _, lang := range available {
		known[strings.ToLower(lang)] = struct{}{}
	}
	out := make([]string, 0, len(s.Languages))
	for _, lang := range s.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, ok := known[lang]; !ok {
			return nil, fmt.Errorf("language %q has no patterns in this standard (available: %s)",
				lang, strings.Join(available, ", "))
		}
		out = append(out, lang)
	}
	return out, nil
}
