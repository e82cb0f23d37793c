package shelfapi

import (
	"context"

	"github.com/pkg/errors"
)

// ListFavorites returns the current user's favorites.
func (c *Client) ListFavorites(ctx context.Context) ([]*FavoriteEntry, error) {
	var favorites []*FavoriteEntry
	err := c.GetResponse(ctx, c.MakePath("users/favorites"), &favorites)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return favorites, nil
}

// AddFavorite creates a favorite entry for the given game. The server
// enforces at-most-one per (user, game): a second call for the same
// game fails rather than silently merging.
func (c *Client) AddFavorite(ctx context.Context, gameID int64) (*FavoriteEntry, error) {
	payload := map[string]interface{}{
		"game_id": gameID,
	}

	entry := &FavoriteEntry{}
	err := c.PostResponse(ctx, c.MakePath("users/favorites"), payload, entry)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return entry, nil
}

// RemoveFavorite destroys the favorite entry for the given game.
func (c *Client) RemoveFavorite(ctx context.Context, gameID int64) error {
	err := c.DeleteResponse(ctx, c.MakePath("users/favorites/%d", gameID))
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
