package semgrep

// Severity vocabulary accepted by Semgrep.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// Rule is one entry of a Semgrep rules file. Pattern may hold the `{}`
// placeholder when the source pattern had no literal expression.
type Rule struct {
	ID        string   `yaml:"id"`
	Languages []string `yaml:"languages"`
	Message   string   `yaml:"message"`
	Severity  string   `yaml:"severity"`
	Pattern   string   `yaml:"pattern"`
}

// File is the top-level document of a rules file.
type File struct {
	Rules []Rule `yaml:"rules"`
}
