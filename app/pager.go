package app

import "context"

// DefaultPageSize is the fixed page size shared by every list endpoint.
const DefaultPageSize = 10

// Page is one page of results plus the cursor for the next page.
// NextCursor is nil when no further page is expected.
type Page[T any] struct {
	Items      []T  `json:"items"`
	NextCursor *int `json:"nextCursor"`
}

// FetchFunc fetches one window of rows. Implementations must apply the
// limit/offset verbatim and preserve a stable order across calls.
type FetchFunc[T any] func(ctx context.Context, limit, offset int) ([]T, error)

// Paginate runs the shared offset-paging convention over fetch: cursor is
// 1-based (values below 1 are treated as 1), offset = (cursor-1)*limit, and
// the next cursor exists iff a full page came back. A page of exactly limit
// rows at the end of the set costs one extra empty fetch; an error leaves
// the caller free to retry with the same cursor.
func Paginate[T any](ctx context.Context, cursor, limit int, fetch FetchFunc[T]) (*Page[T], error) {
	if cursor < 1 {
		cursor = 1
	}
	items, err := fetch(ctx, limit, (cursor-1)*limit)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if len(items) > limit-1 {
		nextCursor := cursor + 1
		page.NextCursor = &nextCursor
	}
	return page, nil
}
