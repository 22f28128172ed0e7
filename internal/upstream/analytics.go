package upstream

import (
	"context"
	"fmt"
)

// Leaderboard returns the project's score ranking, highest first. The
// aggregate is recomputed entirely server-side; clients refetch it after a
// task reaches done. Membership-gated.
func (c *Client) Leaderboard(ctx context.Context, token string, projectID int64) ([]Leader, error) {
	path := fmt.Sprintf("/analytics/leaderboard/%d", projectID)
	var leaders []Leader
	if err := c.getJSON(ctx, "leaderboard", path, token, &leaders); err != nil {
		return nil, err
	}
	return leaders, nil
}
