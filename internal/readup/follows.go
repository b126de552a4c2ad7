package readup

import (
	"context"
	"fmt"

	"github.com/readupapp/readup-go/internal/domain"
)

// FetchFollows lists the current user's follows.
func (c *Client) FetchFollows(ctx context.Context) ([]domain.Follow, error) {
	var payload []domain.Follow
	if err := c.get(ctx, "/follows", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateFollow follows a persisted entity. Uniqueness per (type, id) is
// enforced authoritatively server-side.
func (c *Client) CreateFollow(ctx context.Context, t domain.FollowableType, id int64) (*domain.Follow, error) {
	body := struct {
		FollowableType domain.FollowableType `json:"followable_type"`
		FollowableID   int64                 `json:"followable_id"`
	}{t, id}

	var payload domain.Follow
	if err := c.post(ctx, "/follows", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteFollow removes a follow by its own id.
func (c *Client) DeleteFollow(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/follows/%d", id))
}
