package http

import (
	"context"
	"iter"
)

// PageFetcher fetches the page identified by cursor. The first call gets an
// empty cursor. It returns the page's items and the cursor of the following
// page, or "" when this page is the last one.
type PageFetcher[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// PageIterator walks a paginated API on demand. A page is requested only
// when the caller asks for an item past the buffered ones.
type PageIterator[T any] struct {
	fetch   PageFetcher[T]
	cursor  string
	buffer  []T
	started bool
	done    bool
	err     error
	pages   int
	fetched int
}

// NewPageIterator creates a new iterator with the given fetch function.
func NewPageIterator[T any](fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{fetch: fetch}
}

// Next returns the next item, fetching a page when the buffer is empty.
// When iteration is complete it returns (zero, false, nil).
func (p *PageIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if p.err != nil {
		return zero, false, p.err
	}

	// Empty pages with a next cursor are skipped.
	for len(p.buffer) == 0 && !p.done {
		if p.started && p.cursor == "" {
			p.done = true
			break
		}
		items, next, err := p.fetch(ctx, p.cursor)
		if err != nil {
			p.err = err
			return zero, false, err
		}
		p.started = true
		p.pages++
		p.buffer = items
		p.cursor = next
		if next == "" {
			p.done = true
		}
	}

	if len(p.buffer) == 0 {
		return zero, false, nil
	}

	item := p.buffer[0]
	p.buffer = p.buffer[1:]
	p.fetched++

	return item, true, nil
}

// All collects every remaining item.
func (p *PageIterator[T]) All(ctx context.Context) ([]T, error) {
	all := []T{}
	for {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, item)
	}
}

// Take returns up to n items from the iterator.
func (p *PageIterator[T]) Take(ctx context.Context, n int) ([]T, error) {
	items := make([]T, 0, n)
	for len(items) < n {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// ForEach calls fn for each item in the iterator.
// If fn returns an error, iteration stops and that error is returned.
func (p *PageIterator[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(item); err != nil {
			return err
		}
	}
}

// Items adapts the iterator to a range-over-func sequence. A fetch error is
// yielded once, after which the sequence ends.
func (p *PageIterator[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := p.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(item, nil) {
				return
			}
		}
	}
}

// Err returns any error that occurred during iteration.
func (p *PageIterator[T]) Err() error {
	return p.err
}

// Pages returns the number of pages fetched so far.
func (p *PageIterator[T]) Pages() int {
	return p.pages
}

// Fetched returns the number of items returned so far.
func (p *PageIterator[T]) Fetched() int {
	return p.fetched
}
