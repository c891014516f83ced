package planka

import (
	"context"
	"net/http"

	"github.com/juju/errors"
)

// Deletion calls. A 404 means the record is already gone and is reported
// as success; cascade ordering (cards before lists before boards before
// projects) is the caller's responsibility.

// DeleteCard deletes one card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.delete(ctx, "/cards/"+cardID)
}

// DeleteList deletes one list. Planka may answer 403 here even for
// admin tokens; callers treat that as a known non-fatal skip.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	return c.delete(ctx, "/lists/"+listID)
}

// DeleteBoard deletes one board.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.delete(ctx, "/boards/"+boardID)
}

// DeleteProject deletes one project. The target refuses with 422 while it
// still considers boards attached.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.delete(ctx, "/projects/"+projectID)
}

func (c *Client) delete(ctx context.Context, path string) error {
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if errors.IsNotFound(err) {
		return nil
	}
	return err
}
