package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
	"github.com/codacy-acme/semgrep-extractor/internal/export"
	"github.com/codacy-acme/semgrep-extractor/internal/prompt"
	"github.com/codacy-acme/semgrep-extractor/internal/shared"
	"github.com/codacy-acme/semgrep-extractor/internal/storage"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "export":
		exportCmd(os.Args[2:])
	case "standards":
		standardsCmd(os.Args[2:])
	case "exports":
		exportsCmd(os.Args[2:])
	case "version":
		fmt.Println("semgrep-extractor", version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `semgrep-extractor – generate Semgrep rules from a Codacy coding standard

Usage:
  semgrep-extractor export    [--provider gh] [--organization <org>] [--standard <id-or-name>]
                              [--languages py,go] [--tool <uuid>] [--output semgrep_rules.yaml]
                              [--no-input] [--db ./semgrep-extractor.db] [--config <path>]
  semgrep-extractor standards --provider <gh|ghe|bb|gl> --organization <org> [--config <path>]
  semgrep-extractor exports   [--limit 20] [--db ./semgrep-extractor.db] [--config <path>]
  semgrep-extractor version

The Codacy API token is read from CODACY_API_TOKEN. The export output file
is replaced wholesale on every run; it is a draft that needs human review.
`)
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	provider := fs.String("provider", "", "Provider code: gh, ghe, bb or gl")
	org := fs.String("organization", "", "Codacy organization name")
	standard := fs.String("standard", "", "Coding standard ID or name (skips the prompt)")
	languages := fs.String("languages", "", "Comma-separated languages to include (skips the prompt; empty = all)")
	tool := fs.String("tool", "", "Tool UUID (default is Semgrep)")
	output := fs.String("output", "", "Output file name")
	dbPath := fs.String("db", "", "Export history database path")
	noInput := fs.Bool("no-input", false, "Never prompt; fail when a required value is missing")
	noHistory := fs.Bool("no-history", false, "Skip recording the run in the history database")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *output == "" {
		*output = cfg.Export.Output
	}
	if *tool == "" {
		*tool = cfg.Export.Tool
	}
	if *dbPath == "" {
		*dbPath = cfg.History.DSN
	}

	token := cfg.Token()
	if token == "" {
		fmt.Fprintf(os.Stderr, "export: %s environment variable is not set\n", cfg.API.TokenEnv)
		os.Exit(1)
	}

	flags := prompt.Static{
		Provider:     *provider,
		Organization: *org,
		Standard:     *standard,
		Languages:    splitLanguages(*languages),
	}
	var selector prompt.Selector = flags
	interactive := !*noInput && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		selector = prompt.Fallback{
			Flags:       flags,
			Interactive: prompt.NewTerminal(os.Stdin, os.Stdout),
		}
	}

	client := codacy.NewClient(codacy.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   token,
		Timeout: cfg.Timeout(),
	})

	res, err := export.Run(context.Background(), export.Options{
		Client:     client,
		Selector:   selector,
		Progress:   &shared.CountProgress{W: os.Stderr, Label: "Fetching patterns", Unit: "pages"},
		ToolUUID:   *tool,
		OutputPath: *output,
	})
	if err != nil {
		slog.Error("export failed", "err", err)
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}

	if !*noHistory {
		recordExport(*dbPath, res)
	}

	langs := "all"
	if len(res.Languages) > 0 {
		langs = strings.Join(res.Languages, ", ")
	}
	fmt.Printf("Export OK\n  Standard:  %s\n  Tool:      %s\n  Languages: %s\n  Rules:     %d\n  Output:    %s\n",
		res.Standard.Name, res.Tool.Name, langs, res.RuleCount, res.OutputPath)
}

// recordExport is best-effort bookkeeping; a history failure never fails
// the export itself.
func recordExport(dbPath string, res export.Result) {
	db, err := storage.OpenSQLite(dbPath)
	if err != nil {
		slog.Warn("history db open error", "err", err)
		return
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Warn("history db schema error", "err", err)
		return
	}
	err = db.SaveExport(storage.Export{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Provider:     res.Provider,
		Organization: res.Organization,
		StandardID:   res.Standard.ID,
		StandardName: res.Standard.Name,
		ToolUUID:     res.Tool.UUID,
		Languages:    res.Languages,
		RuleCount:    res.RuleCount,
		OutputPath:   res.OutputPath,
	})
	if err != nil {
		slog.Warn("history db save error", "err", err)
	}
}

func standardsCmd(args []string) {
	fs := flag.NewFlagSet("standards", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	provider := fs.String("provider", "", "Provider code: gh, ghe, bb or gl")
	org := fs.String("organization", "", "Codacy organization name")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	flags := prompt.Static{Provider: *provider, Organization: *org}
	code, err := flags.SelectProvider()
	if err == nil {
		_, err = flags.SelectOrganization()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "standards:", err)
		os.Exit(2)
	}

	token := cfg.Token()
	if token == "" {
		fmt.Fprintf(os.Stderr, "standards: %s environment variable is not set\n", cfg.API.TokenEnv)
		os.Exit(1)
	}

	client := codacy.NewClient(codacy.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   token,
		Timeout: cfg.Timeout(),
	})
	standards, err := client.ListStandards(context.Background(), code, *org)
	if err != nil {
		fmt.Fprintln(os.Stderr, "standards:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEFAULT")
	for _, s := range standards {
		def := ""
		if s.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, def)
	}
	_ = w.Flush()
}

func exportsCmd(args []string) {
	fs := flag.NewFlagSet("exports", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	dbPath := fs.String("db", "", "Export history database path")
	limit := fs.Int("limit", 20, "Maximum rows to show (0 = all)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
	if *dbPath == "" {
		*dbPath = cfg.History.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "exports:", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		fmt.Fprintln(os.Stderr, "exports:", err)
		os.Exit(1)
	}
	rows, err := db.ListExports(*limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "exports:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tORG\tSTANDARD\tLANGS\tRULES\tOUTPUT")
	for _, e := range rows {
		langs := "all"
		if len(e.Languages) > 0 {
			langs = strings.Join(e.Languages, ",")
		}
		fmt.Fprintf(w, "%s\t%s/%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Provider, e.Organization,
			e.StandardName, langs, e.RuleCount, e.OutputPath)
	}
	_ = w.Flush()
}

func splitLanguages(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
