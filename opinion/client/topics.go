package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

// ListTopics fetches one page of open topics. The filter parameters are fixed:
// the bot only trades listed binary topics on BSC, newest first.
func (c *Client) ListTopics(ctx context.Context, page, limit int) ([]types.Topic, error) {
	var out types.TopicListResponse

	resp, err := c.newRequest(ctx).
		SetQueryParams(map[string]string{
			"page":          strconv.Itoa(page),
			"limit":         strconv.Itoa(limit),
			"sortBy":        "1",
			"chainId":       "56",
			"status":        "2",
			"isShow":        "1",
			"topicType":     "2",
			"indicatorType": "2",
		}).
		SetResult(&out).
		Get(topicEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "list topics")
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrCredentialExpired
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode(), Body: truncateBody(resp.Body())}
	}
	if out.Errno != 0 {
		return nil, &VenueError{Errno: out.Errno, Errmsg: out.Errmsg}
	}

	return out.Result.List, nil
}
