package util

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseId(t *testing.T) {
	id, httpErr := ParseId("42")
	require.Nil(t, httpErr)
	assert.Equal(t, int64(42), id)

	_, httpErr = ParseId("forty-two")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "absent defaults to first page", raw: "", want: 1},
		{name: "first page", raw: "1", want: 1},
		{name: "later page", raw: "17", want: 17},
		{name: "zero rejected", raw: "0", wantErr: true},
		{name: "negative rejected", raw: "-2", wantErr: true},
		{name: "non-numeric rejected", raw: "abc", wantErr: true},
		{name: "fractional rejected", raw: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, httpErr := ParseCursor(tt.raw)
			if tt.wantErr {
				require.NotNil(t, httpErr)
				assert.Equal(t, http.StatusBadRequest, httpErr.Status)
				return
			}
			require.Nil(t, httpErr)
			assert.Equal(t, tt.want, cursor)
		})
	}
}
