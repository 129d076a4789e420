package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fixware/console/internal/core/ports"
)

// pageEnvelope mirrors the backend's paged list shape.
type pageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// decodeList normalizes a list response body. The backend answers some list
// endpoints with a bare JSON array and others with a page envelope; both are
// folded into one envelope (a bare array counts as a single page).
func decodeList[T any](raw json.RawMessage) (pageEnvelope[T], error) {
	var env pageEnvelope[T]

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return env, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return env, fmt.Errorf("decode list: %w", err)
		}
		env.Content = items
		env.TotalElements = int64(len(items))
		env.TotalPages = 1
		return env, nil
	}

	if err := json.Unmarshal(trimmed, &env); err != nil {
		return env, fmt.Errorf("decode page: %w", err)
	}
	return env, nil
}

// listPath builds a list URL with the query's non-zero parameters.
func listPath(base string, q ports.ListQuery) string {
	params := url.Values{}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.UserID > 0 {
		params.Set("userId", strconv.FormatInt(q.UserID, 10))
	}
	if encoded := params.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}
