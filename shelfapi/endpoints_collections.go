package shelfapi

import (
	"context"

	"github.com/pkg/errors"
)

// ListCollections returns the current user's collections, each
// embedding its (loosely typed) membership list.
func (c *Client) ListCollections(ctx context.Context) ([]*Collection, error) {
	var collections []*Collection
	err := c.GetResponse(ctx, c.MakePath("collections"), &collections)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return collections, nil
}

// GetCollection returns a single collection.
func (c *Client) GetCollection(ctx context.Context, collectionID int64) (*Collection, error) {
	collection := &Collection{}
	err := c.GetResponse(ctx, c.MakePath("collections/%d", collectionID), collection)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return collection, nil
}

// CreateCollection creates a new, empty collection and returns it.
func (c *Client) CreateCollection(ctx context.Context, params CreateCollectionParams) (*Collection, error) {
	err := params.Validate()
	if err != nil {
		return nil, errors.WithStack(&APIError{
			Code:     CodeInvalidRequest,
			Messages: []string{err.Error()},
		})
	}

	collection := &Collection{}
	err = c.PostResponse(ctx, c.MakePath("collections"), params, collection)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return collection, nil
}

// AddCollectionGame adds a game to a collection, with optional
// metadata. Violating the one-membership-per-(collection, game)
// constraint comes back as CodeDuplicateMembership however the server
// chose to report it.
func (c *Client) AddCollectionGame(ctx context.Context, collectionID int64, gameID int64, params MembershipParams) error {
	err := params.Validate()
	if err != nil {
		return errors.WithStack(&APIError{
			Code:     CodeInvalidRequest,
			Messages: []string{err.Error()},
		})
	}

	err = c.PostResponse(ctx, c.MakePath("collections/%d/games", collectionID), params.payload(gameID), nil)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// UpdateCollectionGame updates the metadata of a game already in a
// collection. Same optional-field handling as AddCollectionGame.
func (c *Client) UpdateCollectionGame(ctx context.Context, collectionID int64, gameID int64, params MembershipParams) error {
	err := params.Validate()
	if err != nil {
		return errors.WithStack(&APIError{
			Code:     CodeInvalidRequest,
			Messages: []string{err.Error()},
		})
	}

	err = c.PutResponse(ctx, c.MakePath("collections/%d/games/%d", collectionID, gameID), params.payload(0), nil)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
