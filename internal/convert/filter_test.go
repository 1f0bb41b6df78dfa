package convert

import (
	"reflect"
	"testing"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
)

func testPattern(id string, enabled bool, langs ...string) codacy.Pattern {
	return codacy.Pattern{
		Enabled: enabled,
		Definition: codacy.PatternDefinition{
			ID:        id,
			Languages: langs,
		},
	}
}

func ids(patterns []codacy.Pattern) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.Definition.ID)
	}
	return out
}

func TestEnabled_DropsDisabled(t *testing.T) {
	in := []codacy.Pattern{
		testPattern("a", true, "python"),
		testPattern("b", false, "python"),
		testPattern("c", true, "go"),
	}
	got := Enabled(in)
	if want := []string{"a", "c"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Enabled = %v, want %v", ids(got), want)
	}
}

func TestFilterByLanguage_Intersection(t *testing.T) {
	in := []codacy.Pattern{
		testPattern("py", true, "Python"),
		testPattern("pygo", true, "Python", "Go"),
		testPattern("go", true, "Go"),
		testPattern("none", true),
	}

	got := FilterByLanguage(in, []string{"python"})
	if want := []string{"py", "pygo"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("filter(python) = %v, want %v", ids(got), want)
	}

	got = FilterByLanguage(in, []string{"go", "ruby"})
	if want := []string{"pygo", "go"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("filter(go,ruby) = %v, want %v", ids(got), want)
	}
}

func TestFilterByLanguage_EmptySelectionPassesEverything(t *testing.T) {
	in := []codacy.Pattern{
		testPattern("a", true, "python"),
		testPattern("b", true, "go"),
	}
	got := FilterByLanguage(in, nil)
	if !reflect.DeepEqual(ids(got), ids(in)) {
		t.Errorf("filter(all) = %v, want %v", ids(got), ids(in))
	}
}

func TestFilterByLanguage_PreservesOrder(t *testing.T) {
	in := []codacy.Pattern{
		testPattern("z", true, "go"),
		testPattern("a", true, "go"),
		testPattern("m", true, "go"),
	}
	got := FilterByLanguage(in, []string{"go"})
	if want := []string{"z", "a", "m"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order changed: %v", ids(got))
	}
}

func TestLanguages_SortedLowercaseUnion(t *testing.T) {
	in := []codacy.Pattern{
		testPattern("a", true, "Python", "Go"),
		testPattern("b", true, "go", "Ruby"),
	}
	got := Languages(in)
	if want := []string{"go", "python", "ruby"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Languages = %v, want %v", got, want)
	}
}
