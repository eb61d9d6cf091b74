package client

import (
	"errors"
	"fmt"
)

// ErrCredentialExpired marks an HTTP 401 from the venue. The bearer token has
// to be refreshed by the operator; retrying is pointless.
var ErrCredentialExpired = errors.New("bearer token expired")

// ErrInvalidPrice marks a quote that cannot price an order.
var ErrInvalidPrice = errors.New("price must be greater than 0")

// VenueError is an application-level rejection: HTTP 200 with errno != 0.
type VenueError struct {
	Errno  int
	Errmsg string
}

func (e *VenueError) Error() string {
	return fmt.Sprintf("venue error %d: %s", e.Errno, e.Errmsg)
}

// HTTPError is a non-200 venue response. Body is truncated for logging.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// truncateBody bounds response bodies folded into error messages.
func truncateBody(body []byte) string {
	const max = 100
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
