package api

import "context"

// Health calls /health and returns its status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return "", err
	}
	payload, err := decode[struct {
		Status string `json:"status"`
	}](resp)
	if err != nil {
		return "", err
	}
	return payload.Status, nil
}
