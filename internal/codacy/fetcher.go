package codacy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// pageLimit is the page size requested from the API.
const pageLimit = 1000

// ListStandards fetches the organization's coding standards in API order.
func (c *Client) ListStandards(ctx context.Context, provider, org string) ([]Standard, error) {
	path := fmt.Sprintf("organizations/%s/%s/coding-standards", provider, org)
	var page standardsPage
	if err := c.Get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ListTools fetches the tools associated with a coding standard.
func (c *Client) ListTools(ctx context.Context, provider, org, standardID string) ([]Tool, error) {
	path := fmt.Sprintf("organizations/%s/%s/coding-standards/%s/tools", provider, org, standardID)
	var page toolsPage
	if err := c.Get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// FindTool returns the tool with the given UUID, or false when absent.
func FindTool(tools []Tool, uuid string) (Tool, bool) {
	for _, t := range tools {
		if t.UUID == uuid {
			return t, true
		}
	}
	return Tool{}, false
}

// Patterns returns a lazy, restartable iterator over a tool's patterns
// within a coding standard, following pagination cursors until the API
// reports no further pages. onPage, when non-nil, is called once per
// fetched page with the page's item count.
func (c *Client) Patterns(ctx context.Context, provider, org, standardID, toolUUID string, onPage func(int)) *Pages[Pattern] {
	path := fmt.Sprintf("organizations/%s/%s/coding-standards/%s/tools/%s/patterns",
		provider, org, standardID, toolUUID)
	fetch := func(ctx context.Context, cursor string) (Page[Pattern], error) {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageLimit))
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var page patternsPage
		if err := c.Get(ctx, path, q, &page); err != nil {
			return Page[Pattern]{}, err
		}
		return Page[Pattern]{Items: page.Data, Cursor: page.Pagination.Cursor}, nil
	}
	return newPages(ctx, fetch, onPage)
}

// CollectPatterns drains a pattern iterator, dropping duplicates by
// pattern-definition ID in case the API ever returns overlapping pages.
func CollectPatterns(pages *Pages[Pattern]) ([]Pattern, error) {
	seen := make(map[string]struct{})
	var out []Pattern
	for pages.Next() {
		p := pages.Value()
		if id := p.Definition.ID; id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, p)
	}
	return out, pages.Err()
}
