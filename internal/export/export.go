// Package export wires the full conversion pipeline: select, fetch,
// filter, map, write.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codacy-acme/semgrep-extractor/internal/codacy"
	"github.com/codacy-acme/semgrep-extractor/internal/convert"
	"github.com/codacy-acme/semgrep-extractor/internal/prompt"
	"github.com/codacy-acme/semgrep-extractor/internal/semgrep"
	"github.com/codacy-acme/semgrep-extractor/internal/shared"
)

// Options configures one export run. Client and Selector are required.
type Options struct {
	Client     *codacy.Client
	Selector   prompt.Selector
	Progress   shared.Progress // nil disables progress reporting
	ToolUUID   string          // empty selects Semgrep
	OutputPath string
}

// Result summarizes a completed export.
type Result struct {
	Provider     string
	Organization string
	Standard     codacy.Standard
	Tool         codacy.Tool
	Languages    []string // empty means all
	RuleCount    int
	OutputPath   string
}

// Run executes the conversion end to end. The rule collection is built
// fully in memory and written once, so no partial output file ever exists.
func Run(ctx context.Context, opts Options) (Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = shared.NopProgress{}
	}
	toolUUID := opts.ToolUUID
	if toolUUID == "" {
		toolUUID = codacy.SemgrepToolUUID
	}

	provider, err := opts.Selector.SelectProvider()
	if err != nil {
		return Result{}, err
	}
	org, err := opts.Selector.SelectOrganization()
	if err != nil {
		return Result{}, err
	}
	slog.Info("fetching coding standards", "provider", provider, "organization", org)

	standards, err := opts.Client.ListStandards(ctx, provider, org)
	if err != nil {
		return Result{}, fmt.Errorf("list coding standards for %s/%s: %w", provider, org, err)
	}
	if len(standards) == 0 {
		return Result{}, fmt.Errorf("no coding standards found for organization %q", org)
	}
	standard, err := opts.Selector.SelectStandard(standards)
	if err != nil {
		return Result{}, err
	}
	slog.Info("selected coding standard", "name", standard.Name, "id", standard.ID)

	tools, err := opts.Client.ListTools(ctx, provider, org, standard.ID)
	if err != nil {
		return Result{}, fmt.Errorf("list tools for standard %q: %w", standard.Name, err)
	}
	tool, ok := codacy.FindTool(tools, toolUUID)
	if !ok {
		return Result{}, fmt.Errorf("tool %s not found in standard %q; available tools: %s",
			toolUUID, standard.Name, describeTools(tools))
	}
	slog.Info("selected tool", "name", tool.Name, "uuid", tool.UUID)

	pages := opts.Client.Patterns(ctx, provider, org, standard.ID, tool.UUID, func(n int) {
		progress.Step(1)
	})
	patterns, err := codacy.CollectPatterns(pages)
	progress.Done()
	if err != nil {
		return Result{}, fmt.Errorf("fetch patterns: %w", err)
	}
	enabled := convert.Enabled(patterns)
	slog.Info("fetched patterns", "total", len(patterns), "enabled", len(enabled))

	selected, err := opts.Selector.SelectLanguages(convert.Languages(enabled))
	if err != nil {
		return Result{}, err
	}

	filtered := convert.FilterByLanguage(enabled, selected)
	rules := convert.NewMapper(selected).MapAll(filtered)

	if err := semgrep.Write(rules, opts.OutputPath); err != nil {
		return Result{}, err
	}
	return Result{
		Provider:     provider,
		Organization: org,
		Standard:     standard,
		Tool:         tool,
		Languages:    selected,
		RuleCount:    len(rules),
		OutputPath:   opts.OutputPath,
	}, nil
}

func describeTools(tools []codacy.Tool) string {
	if len(tools) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(tools))
	for _, t := range tools {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Name, t.UUID))
	}
	return strings.Join(parts, ", ")
}
