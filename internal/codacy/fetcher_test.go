package codacy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pat(id string, langs ...string) Pattern {
	return Pattern{
		Enabled:  true,
		Severity: "Warning",
		Definition: PatternDefinition{
			ID:        id,
			Languages: langs,
		},
	}
}

// patternServer serves cursor-paginated pattern pages keyed by cursor
// value ("" selects the first page).
func patternServer(t *testing.T, pages map[string]patternsPage) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/patterns") {
			http.NotFound(w, r)
			return
		}
		page, ok := pages[r.URL.Query().Get("cursor")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
}

func TestPatterns_FollowsCursors(t *testing.T) {
	pages := map[string]patternsPage{
		"": {
			Data:       []Pattern{pat("tool.a"), pat("tool.b")},
			Pagination: pagination{Cursor: "c2"},
		},
		"c2": {
			Data:       []Pattern{pat("tool.c")},
			Pagination: pagination{Cursor: "c3"},
		},
		"c3": {
			Data: []Pattern{pat("tool.d")},
		},
	}
	srv := patternServer(t, pages)
	defer srv.Close()

	var pageSizes []int
	it := testClient(t, srv).Patterns(context.Background(), "gh", "acme", "std-1", SemgrepToolUUID,
		func(n int) { pageSizes = append(pageSizes, n) })
	got, err := CollectPatterns(it)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	var ids []string
	for _, p := range got {
		ids = append(ids, p.Definition.ID)
	}
	if want := "tool.a,tool.b,tool.c,tool.d"; strings.Join(ids, ",") != want {
		t.Errorf("ids = %v, want %s", ids, want)
	}
	if fmt.Sprint(pageSizes) != "[2 1 1]" {
		t.Errorf("page sizes = %v", pageSizes)
	}
}

func TestCollectPatterns_DeduplicatesOverlappingPages(t *testing.T) {
	pages := map[string]patternsPage{
		"": {
			Data:       []Pattern{pat("tool.a"), pat("tool.b")},
			Pagination: pagination{Cursor: "c2"},
		},
		"c2": {
			// The API repeated tool.b at the page boundary.
			Data: []Pattern{pat("tool.b"), pat("tool.c")},
		},
	}
	srv := patternServer(t, pages)
	defer srv.Close()

	it := testClient(t, srv).Patterns(context.Background(), "gh", "acme", "std-1", SemgrepToolUUID, nil)
	got, err := CollectPatterns(it)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d patterns, want 3", len(got))
	}
}

func TestPatterns_Restart(t *testing.T) {
	pages := map[string]patternsPage{
		"": {Data: []Pattern{pat("tool.a"), pat("tool.b")}},
	}
	srv := patternServer(t, pages)
	defer srv.Close()

	it := testClient(t, srv).Patterns(context.Background(), "gh", "acme", "std-1", SemgrepToolUUID, nil)
	first, err := it.Collect()
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	it.Restart()
	second, err := it.Collect()
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("passes returned %d and %d items, want 2 and 2", len(first), len(second))
	}
}

func TestPatterns_PropagatesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	it := testClient(t, srv).Patterns(context.Background(), "gh", "acme", "nope", SemgrepToolUUID, nil)
	_, err := CollectPatterns(it)
	if !IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestListStandards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organizations/gh/acme/coding-standards" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(standardsPage{Data: []Standard{
			{ID: "std-1", Name: "org-default", IsDefault: true},
			{ID: "std-2", Name: "strict"},
		}})
	}))
	defer srv.Close()

	got, err := testClient(t, srv).ListStandards(context.Background(), "gh", "acme")
	if err != nil {
		t.Fatalf("list standards: %v", err)
	}
	if len(got) != 2 || got[0].Name != "org-default" || !got[0].IsDefault {
		t.Errorf("standards = %+v", got)
	}
}

func TestListToolsAndFindTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(toolsPage{Data: []Tool{
			{UUID: "other-uuid", Name: "ESLint"},
			{UUID: SemgrepToolUUID, Name: "Semgrep"},
		}})
	}))
	defer srv.Close()

	tools, err := testClient(t, srv).ListTools(context.Background(), "gh", "acme", "std-1")
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	tool, ok := FindTool(tools, SemgrepToolUUID)
	if !ok || tool.Name != "Semgrep" {
		t.Errorf("FindTool = %+v, %v", tool, ok)
	}
	if _, ok := FindTool(tools, "missing"); ok {
		t.Error("FindTool found a missing UUID")
	}
}
