package api

import (
	"context"
	"fmt"
)

// ListDatasets fetches the datasets the backend can query.
func (c *Client) ListDatasets(ctx context.Context) (*DatasetList, error) {
	resp, err := c.get(ctx, "/meta/datasets")
	if err != nil {
		return nil, err
	}
	list, err := decode[DatasetList](resp)
	if err != nil {
		return nil, err
	}
	if len(list.Names()) == 0 {
		return nil, &Error{
			Status:  resp.status,
			Message: resp.statusLine,
			Err:     fmt.Errorf("%w: empty dataset list", ErrMalformedResponse),
		}
	}
	return list, nil
}
