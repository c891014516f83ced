package kaiten

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// envelope is the paginated response shape of Kaiten collection endpoints.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination paginationInfo  `json:"pagination"`
}

type paginationInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// listAll fetches every page of a collection and concatenates the results.
// It stops on an empty page or when the reported total page count is
// reached. Endpoints that return a bare JSON array instead of the
// paginated envelope yield everything on the first pass.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	page := 1

	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(c.PageSize))

		var raw json.RawMessage
		if err := c.get(ctx, path, q, &raw); err != nil {
			return nil, fmt.Errorf("fetching page %d of %s: %w", page, path, err)
		}

		if body := bytes.TrimSpace(raw); len(body) > 0 && body[0] == '[' {
			var plain []T
			if err := json.Unmarshal(body, &plain); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", path, err)
			}
			return append(all, plain...), nil
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decoding page %d of %s: %w", page, path, err)
		}

		var chunk []T
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &chunk); err != nil {
				return nil, fmt.Errorf("decoding page %d of %s: %w", page, path, err)
			}
		}
		if len(chunk) == 0 {
			break
		}
		all = append(all, chunk...)

		if env.Pagination.TotalPages > 0 && page >= env.Pagination.TotalPages {
			break
		}
		page++
	}
	return all, nil
}
