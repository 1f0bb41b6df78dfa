package codacy

// SemgrepToolUUID identifies the Semgrep tool within a coding standard.
const SemgrepToolUUID = "6792c561-236d-41b7-ba5e-9d6bee0d548b"

// Provider codes accepted by the API, with their display names.
var Providers = map[string]string{
	"gh":  "GitHub",
	"ghe": "GitHub Enterprise",
	"bb":  "Bitbucket",
	"gl":  "GitLab",
}

// Standard is a coding-standard summary as listed by the API.
type Standard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// Tool is an analysis tool associated with a coding standard.
type Tool struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// PatternDefinition is the tool-side definition of a pattern.
type PatternDefinition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	// Pattern carries a literal rule expression when the tool exposes one.
	Pattern string `json:"pattern,omitempty"`
}

// Pattern is one coding-standard entry: a definition plus the standard's
// enablement and severity overrides.
type Pattern struct {
	Enabled    bool              `json:"enabled"`
	Severity   string            `json:"severity,omitempty"`
	Definition PatternDefinition `json:"patternDefinition"`
}

// pagination is the cursor envelope attached to list responses.
type pagination struct {
	Cursor string `json:"cursor,omitempty"`
	Total  int    `json:"total,omitempty"`
}

type standardsPage struct {
	Data       []Standard `json:"data"`
	Pagination pagination `json:"pagination"`
}

type toolsPage struct {
	Data []Tool `json:"data"`
}

type patternsPage struct {
	Data       []Pattern  `json:"data"`
	Pagination pagination `json:"pagination"`
}
