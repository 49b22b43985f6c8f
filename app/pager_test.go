package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceFetch(rows []int) FetchFunc[int] {
	return func(ctx context.Context, limit, offset int) ([]int, error) {
		if offset >= len(rows) {
			return []int{}, nil
		}
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		return rows[offset:end], nil
	}
}

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		numRows        int
		cursor         int
		wantLen        int
		wantNextCursor *int
	}{
		{
			name:           "empty set has no next cursor",
			numRows:        0,
			cursor:         1,
			wantLen:        0,
			wantNextCursor: nil,
		},
		{
			name:           "partial page has no next cursor",
			numRows:        4,
			cursor:         1,
			wantLen:        4,
			wantNextCursor: nil,
		},
		{
			name:           "full page yields next cursor",
			numRows:        25,
			cursor:         1,
			wantLen:        10,
			wantNextCursor: intPtr(2),
		},
		{
			name:           "page of exactly limit-1 has no next cursor",
			numRows:        9,
			cursor:         1,
			wantLen:        9,
			wantNextCursor: nil,
		},
		{
			name:           "exact multiple yields cursor pointing at empty page",
			numRows:        20,
			cursor:         2,
			wantLen:        10,
			wantNextCursor: intPtr(3),
		},
		{
			name:           "page past the end is empty",
			numRows:        20,
			cursor:         3,
			wantLen:        0,
			wantNextCursor: nil,
		},
		{
			name:           "cursor below one clamps to first page",
			numRows:        5,
			cursor:         0,
			wantLen:        5,
			wantNextCursor: nil,
		},
		{
			name:           "negative cursor clamps to first page",
			numRows:        25,
			cursor:         -3,
			wantLen:        10,
			wantNextCursor: intPtr(2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(context.Background(), tt.cursor, DefaultPageSize, sliceFetch(makeRows(tt.numRows)))
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.wantLen)
			assert.Equal(t, tt.wantNextCursor, page.NextCursor)
		})
	}
}

// Following the cursor chain visits every row exactly once, in order.
func TestPaginateWalksWholeSet(t *testing.T) {
	for _, numRows := range []int{0, 1, 9, 10, 11, 30, 37} {
		rows := makeRows(numRows)
		var collected []int
		cursor := 1
		for {
			page, err := Paginate(context.Background(), cursor, DefaultPageSize, sliceFetch(rows))
			require.NoError(t, err)
			collected = append(collected, page.Items...)
			if page.NextCursor == nil {
				break
			}
			cursor = *page.NextCursor
		}
		require.Len(t, collected, numRows, "numRows=%d", numRows)
		for i, v := range collected {
			assert.Equal(t, i, v, "numRows=%d", numRows)
		}
	}
}

func TestPaginateSamePageTwice(t *testing.T) {
	rows := makeRows(23)
	first, err := Paginate(context.Background(), 2, DefaultPageSize, sliceFetch(rows))
	require.NoError(t, err)
	second, err := Paginate(context.Background(), 2, DefaultPageSize, sliceFetch(rows))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaginatePropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	page, err := Paginate(context.Background(), 1, DefaultPageSize, func(ctx context.Context, limit, offset int) ([]int, error) {
		return nil, fetchErr
	})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, fetchErr)
}

func intPtr(v int) *int {
	return &v
}
