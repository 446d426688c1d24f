package api

import (
	"context"
	"strconv"
)

// DefaultSearchLimit is used when the caller passes a non-positive limit.
const DefaultSearchLimit = 20

// Search runs a keyword search over one dataset.
func (c *Client) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	path := buildQuery("/search", map[string]string{
		"term":    input.Term,
		"dataset": input.Dataset,
		"limit":   strconv.Itoa(limit),
	})
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	result, err := decode[SearchResult](resp)
	if err != nil {
		return nil, err
	}
	if result.Records == nil {
		result.Records = []Record{}
	}
	return result, nil
}
