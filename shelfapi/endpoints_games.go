package shelfapi

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// ListGames returns the game catalog, optionally filtered. The catalog
// is public: no session is needed.
func (c *Client) ListGames(ctx context.Context, params ListGamesParams) ([]*Game, error) {
	values := url.Values{}
	if params.Platform != "" {
		values.Add("platform", params.Platform)
	}
	if params.Genre != "" {
		values.Add("genre", params.Genre)
	}
	if params.Search != "" {
		values.Add("search", params.Search)
	}

	var games []*Game
	err := c.GetResponse(ctx, c.MakeValuesPath(values, "games"), &games)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return games, nil
}

// GetGame returns a single catalog entry.
func (c *Client) GetGame(ctx context.Context, gameID int64) (*Game, error) {
	game := &Game{}
	err := c.GetResponse(ctx, c.MakePath("games/%d", gameID), game)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return game, nil
}
