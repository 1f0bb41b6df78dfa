package codacy

import "context"

// Page is one page of results plus the cursor for the next one.
// An empty cursor means the sequence is exhausted.
type Page[T any] struct {
	Items  []T
	Cursor string
}

// fetchPageFunc retrieves the page at cursor ("" for the first page).
type fetchPageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Pages iterates a cursor-paginated listing page by page, so callers can
// consume lazily or collect eagerly without duplicating retrieval logic.
// The zero cursor restarts retrieval from the first page.
type Pages[T any] struct {
	ctx    context.Context
	fetch  fetchPageFunc[T]
	onPage func(items int)

	cursor  string
	done    bool
	current []T
	idx     int
	err     error
}

func newPages[T any](ctx context.Context, fetch fetchPageFunc[T], onPage func(int)) *Pages[T] {
	return &Pages[T]{ctx: ctx, fetch: fetch, onPage: onPage}
}

// Next advances to the next item, fetching pages as needed.
func (p *Pages[T]) Next() bool {
	if p.err != nil {
		return false
	}
	for p.idx >= len(p.current) {
		if p.done {
			return false
		}
		page, err := p.fetch(p.ctx, p.cursor)
		if err != nil {
			p.err = err
			return false
		}
		p.cursor = page.Cursor
		p.done = page.Cursor == ""
		p.current = page.Items
		p.idx = 0
		if p.onPage != nil {
			p.onPage(len(page.Items))
		}
	}
	return true
}

// Value returns the current item and moves past it.
func (p *Pages[T]) Value() T {
	if p.idx < len(p.current) {
		v := p.current[p.idx]
		p.idx++
		return v
	}
	var zero T
	return zero
}

// Err returns the first error encountered, if any.
func (p *Pages[T]) Err() error { return p.err }

// Restart rewinds the iterator to the first page.
func (p *Pages[T]) Restart() {
	p.cursor = ""
	p.done = false
	p.current = nil
	p.idx = 0
	p.err = nil
}

// Collect drains the iterator into a slice.
func (p *Pages[T]) Collect() ([]T, error) {
	var out []T
	for p.Next() {
		out = append(out, p.Value())
	}
	return out, p.Err()
}
