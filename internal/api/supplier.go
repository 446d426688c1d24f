package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gravitrone/secop-lookup/internal/fields"
)

// Supplier fetches the registered supplier for a NIT. Non-digit characters
// are stripped before building the request.
func (c *Client) Supplier(ctx context.Context, nit string) (Record, error) {
	digits := fields.CleanNIT(nit)
	if digits == "" {
		return Record{}, fmt.Errorf("nit %q has no digits", nit)
	}
	resp, err := c.get(ctx, "/proveedor/"+url.PathEscape(digits))
	if err != nil {
		return Record{}, err
	}
	detail, err := decode[Record](resp)
	if err != nil {
		return Record{}, err
	}
	return *detail, nil
}
