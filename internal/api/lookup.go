package api

import (
	"context"
	"fmt"
)

// Lookup resolves a single process by its SECOP URL or noticeUID.
func (c *Client) Lookup(ctx context.Context, input LookupInput) (*LookupResult, error) {
	resp, err := c.post(ctx, "/lookup", input)
	if err != nil {
		return nil, err
	}
	result, err := decode[LookupResult](resp)
	if err != nil {
		return nil, err
	}
	if result.Record == nil {
		return nil, &Error{
			Status:  resp.status,
			Message: resp.statusLine,
			Err:     fmt.Errorf("%w: missing record", ErrMalformedResponse),
		}
	}
	return result, nil
}
