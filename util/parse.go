package util

import (
	"net/http"
	"strconv"
	"time"
)

func ParseTime(val string) (time.Time, error) {
	return time.Parse(time.RFC3339, val)
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

// ParseCursor parses the 1-based page cursor query param. An absent value
// defaults to the first page.
func ParseCursor(raw string) (int, *HTTPError) {
	if raw == "" {
		return 1, nil
	}
	cursor, err := strconv.Atoi(raw)
	if err != nil || cursor < 1 {
		return 0, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "cursor must be a positive integer",
		}
	}
	return cursor, nil
}
