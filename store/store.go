// Package store holds the authenticated user's favorites and
// collections in memory and keeps them consistent with the remote API.
//
// It is the single writer of its own snapshot: presentation code reads
// membership predicates off it, never triggering fetches as a side
// effect. Two consistency policies coexist on purpose: favorites are
// patched optimistically after a successful write (they carry no
// server-derived fields), while collection-membership writes are
// followed by a wholesale authoritative refresh of the collection list
// (membership lists do carry server-derived data).
//
// Known limitation: overlapping mutation calls get no ordering
// guarantee: the last refresh to complete wins and fully overwrites
// collection state. Callers wanting stronger ordering must serialize
// calls themselves. Acceptable here: one user, low write frequency.
package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/shelfapi"
)

type Store struct {
	mu          sync.Mutex
	client      *shelfapi.Client
	favorites   []*shelfapi.FavoriteEntry
	collections []*Collection
	loading     bool
}

func New() *Store {
	return &Store{}
}

// SessionChanged ties the store's lifecycle to the Auth Session. A
// non-nil client (session became present) fetches favorites and
// collections; nil (session went away) clears both synchronously,
// without any network call.
//
// The two initial fetches run concurrently and fail independently: a
// failed half degrades to empty plus a logged warning, it never blocks
// the other half or the caller.
func (s *Store) SessionChanged(ctx context.Context, client *shelfapi.Client) {
	if client == nil {
		s.mu.Lock()
		s.client = nil
		s.favorites = nil
		s.collections = nil
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.client = client
	s.loading = true
	s.mu.Unlock()

	var favorites []*shelfapi.FavoriteEntry
	var collections []*Collection

	var g errgroup.Group
	g.Go(func() error {
		favs, err := client.ListFavorites(ctx)
		if err != nil {
			comm.Warnf("couldn't fetch favorites, starting empty: %s", err)
			return nil
		}
		favorites = favs
		return nil
	})
	g.Go(func() error {
		colls, err := client.ListCollections(ctx)
		if err != nil {
			comm.Warnf("couldn't fetch collections, starting empty: %s", err)
			return nil
		}
		collections = normalizeCollections(colls)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	// the session may have been torn down while we were fetching; a
	// stale load must not resurrect state
	if s.client == client {
		s.favorites = favorites
		s.collections = collections
	}
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) sessionClient() (*shelfapi.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil, errors.WithStack(&shelfapi.APIError{
			Code:     shelfapi.CodeUnauthenticated,
			Messages: []string{"no active session"},
		})
	}
	return s.client, nil
}

// AddToFavorites creates a favorite entry for gameID and, on success,
// appends a locally synthesized entry. No pre-check for existing
// membership happens here: a second call for the same game is the
// server's to accept or reject.
func (s *Store) AddToFavorites(ctx context.Context, gameID int64) error {
	client, err := s.sessionClient()
	if err != nil {
		return err
	}

	_, err = client.AddFavorite(ctx, gameID)
	if err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	s.favorites = append(s.favorites, &shelfapi.FavoriteEntry{GameID: gameID})
	s.mu.Unlock()
	return nil
}

// RemoveFromFavorites deletes the favorite server-side and, on success,
// drops every local entry matching gameID. On failure local state is
// untouched.
func (s *Store) RemoveFromFavorites(ctx context.Context, gameID int64) error {
	client, err := s.sessionClient()
	if err != nil {
		return err
	}

	err = client.RemoveFavorite(ctx, gameID)
	if err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	kept := s.favorites[:0]
	for _, fav := range s.favorites {
		if fav.GameID != gameID && fav.ID != gameID {
			kept = append(kept, fav)
		}
	}
	s.favorites = kept
	s.mu.Unlock()
	return nil
}

// IsGameInFavorites is a pure local predicate: no network, no errors.
func (s *Store) IsGameInFavorites(gameID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.favorites {
		if fav.GameID == gameID || fav.ID == gameID {
			return true
		}
	}
	return false
}

// CreateCollection creates a collection and appends it locally with an
// empty membership list.
func (s *Store) CreateCollection(ctx context.Context, params shelfapi.CreateCollectionParams) (*Collection, error) {
	client, err := s.sessionClient()
	if err != nil {
		return nil, err
	}

	created, err := client.CreateCollection(ctx, params)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	collection := normalizeCollection(created)
	s.mu.Lock()
	s.collections = append(s.collections, collection)
	s.mu.Unlock()
	return collection, nil
}

// AddToCollection adds a game to a collection, then re-fetches the full
// collection list and replaces local state wholesale. The refresh keeps
// us aligned with server-computed fields, at the price of a window
// where overlapping writes can race (see package doc).
func (s *Store) AddToCollection(ctx context.Context, collectionID int64, gameID int64, params shelfapi.MembershipParams) error {
	client, err := s.sessionClient()
	if err != nil {
		return err
	}

	err = client.AddCollectionGame(ctx, collectionID, gameID, params)
	if err != nil {
		return errors.WithStack(err)
	}

	return s.refreshCollections(ctx, client)
}

// UpdateGameInCollection updates a game's metadata in a collection,
// with the same authoritative refresh as AddToCollection.
func (s *Store) UpdateGameInCollection(ctx context.Context, collectionID int64, gameID int64, params shelfapi.MembershipParams) error {
	client, err := s.sessionClient()
	if err != nil {
		return err
	}

	err = client.UpdateCollectionGame(ctx, collectionID, gameID, params)
	if err != nil {
		return errors.WithStack(err)
	}

	return s.refreshCollections(ctx, client)
}

func (s *Store) refreshCollections(ctx context.Context, client *shelfapi.Client) error {
	colls, err := client.ListCollections(ctx)
	if err != nil {
		// the write landed but the refresh didn't: local collections
		// stay stale rather than getting partially patched
		return errors.WithStack(err)
	}
	collections := normalizeCollections(colls)

	s.mu.Lock()
	if s.client == client {
		s.collections = collections
	}
	s.mu.Unlock()
	return nil
}

// IsGameInCollection reports whether any collection's membership list
// contains gameID. Pure local predicate over already-normalized
// entries.
func (s *Store) IsGameInCollection(gameID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, collection := range s.collections {
		for _, entry := range collection.Entries {
			if entry.Game.ID == gameID {
				return true
			}
		}
	}
	return false
}

// Favorites returns a snapshot of the current favorites.
func (s *Store) Favorites() []*shelfapi.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*shelfapi.FavoriteEntry, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// Collections returns a snapshot of the current collections.
func (s *Store) Collections() []*Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Loading reports whether the initial fetch is still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
