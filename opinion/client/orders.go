package client

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

// PlaceOrder submits one signed order payload and returns the venue order id.
// Classification: transport errors and non-200 statuses are wrapped, HTTP 200
// with errno != 0 becomes a VenueError carrying the venue's message.
func (c *Client) PlaceOrder(ctx context.Context, req *types.OrderRequest) (string, error) {
	var out types.OrderResponse

	resp, err := c.newRequest(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post(orderEndpoint)
	if err != nil {
		return "", errors.Wrap(err, "submit order")
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return "", ErrCredentialExpired
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode(), Body: truncateBody(resp.Body())}
	}
	if out.Errno != 0 {
		return "", &VenueError{Errno: out.Errno, Errmsg: out.Errmsg}
	}

	return out.Result.OrderData.OrderID, nil
}
