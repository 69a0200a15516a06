package forum

import (
	"fmt"

	"tbgclient/lib/htmlutil"
	"tbgclient/parse"
)

// Page is one retrieved slice of a paginated resource: its location in the
// forum, its position in the pagination and its contents cast to the
// entity type.
type Page[T any] struct {
	Hierarchy   []htmlutil.Anchor
	CurrentPage int
	TotalPages  int
	Contents    []T
}

// NewPage casts a parsed page's raw records into typed contents through
// the given builder, exactly once, at construction. The cast is
// all-or-nothing: the first record the builder rejects aborts the whole
// page. Builders that need the session capture it in their closure.
func NewPage[T, R any](parsed parse.Page[R], build func(R) (T, error)) (*Page[T], error) {
	contents := make([]T, 0, len(parsed.Contents))
	for i, raw := range parsed.Contents {
		v, err := build(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		contents = append(contents, v)
	}
	return &Page[T]{
		Hierarchy:   parsed.Hierarchy,
		CurrentPage: parsed.CurrentPage,
		TotalPages:  parsed.TotalPages,
		Contents:    contents,
	}, nil
}
