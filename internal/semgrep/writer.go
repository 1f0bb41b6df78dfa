package semgrep

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileHeader = `# This file contains Semgrep rules generated from Codacy configuration
# See https://semgrep.dev for more information about Semgrep
#
# You can use this file locally with:
#  - semgrep --config semgrep_rules.yaml .
#
# For more information about rule syntax, visit:
# https://semgrep.dev/docs/writing-rules/rule-syntax/

`

// scalar renders multiline strings in literal block style so generated
// messages stay readable.
type scalar string

func (s scalar) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(s)}
	if strings.Contains(string(s), "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n, nil
}

type docRule struct {
	ID        string   `yaml:"id"`
	Languages []string `yaml:"languages"`
	Message   scalar   `yaml:"message"`
	Severity  string   `yaml:"severity"`
	Pattern   scalar   `yaml:"pattern"`
}

type doc struct {
	Rules []docRule `yaml:"rules"`
}

// Marshal renders a complete rules file, header included. Field order
// follows the Rule struct; rules keep their input order.
func Marshal(rules []Rule) ([]byte, error) {
	d := doc{Rules: make([]docRule, 0, len(rules))}
	for _, r := range rules {
		d.Rules = append(d.Rules, docRule{
			ID:        r.ID,
			Languages: r.Languages,
			Message:   scalar(r.Message),
			Severity:  r.Severity,
			Pattern:   scalar(r.Pattern),
		})
	}
	// Keep an explicit empty list rather than "rules: null".
	if len(d.Rules) == 0 {
		return []byte(fileHeader + "rules: []\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("serialize rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serialize rules: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes rules and writes them to path, replacing any existing
// file. The document is marshaled fully in memory and written via a temp
// file and rename, so a failed run never leaves a partial or stale-mixed
// file behind.
func Write(rules []Rule, path string) error {
	data, err := Marshal(rules)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Parse reads a rules file back into memory.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse rules file: %w", err)
	}
	return f, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
