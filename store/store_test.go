package store

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gameshelf/shelf/shelfapi"
)

func testClient(t *testing.T, handler http.Handler) *shelfapi.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := shelfapi.ClientWithToken("sesame")
	client.SetServer(server.URL)
	client.RetryPatterns = []time.Duration{time.Millisecond}
	return client
}

func Test_InitializeToleratesPartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		fmt.Fprint(w, `{"message": "favorites exploded"}`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	s := New()
	s.SessionChanged(context.Background(), testClient(t, mux))

	// a failed half degrades to empty, the store stays usable
	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.Collections())
	assert.False(t, s.Loading())
	assert.False(t, s.IsGameInFavorites(42))
	assert.False(t, s.IsGameInCollection(42))
}

func Test_SessionTeardownClearsSynchronously(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "game_id": 42}]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 5, "name": "Retro", "games": [{"id": 42, "title": "Snake"}]}]`)
	})

	s := New()
	s.SessionChanged(context.Background(), testClient(t, mux))
	assert.True(t, s.IsGameInFavorites(42))
	assert.True(t, s.IsGameInCollection(42))

	// no network call is involved in teardown
	s.SessionChanged(context.Background(), nil)
	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.Collections())
	assert.False(t, s.IsGameInFavorites(42))
	assert.False(t, s.IsGameInCollection(42))
}

func Test_MutationsFailFastWithoutSession(t *testing.T) {
	s := New()

	err := s.AddToFavorites(context.Background(), 42)
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeUnauthenticated))

	err = s.AddToCollection(context.Background(), 5, 42, shelfapi.MembershipParams{})
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeUnauthenticated))

	_, err = s.CreateCollection(context.Background(), shelfapi.CreateCollectionParams{Name: "Retro"})
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeUnauthenticated))
}

func Test_AddToFavorites(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			fmt.Fprint(w, `{"id": 7, "game_id": 42}`)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))
	assert.False(t, s.IsGameInFavorites(42))

	assert.NoError(t, s.AddToFavorites(bg, 42))
	assert.True(t, s.IsGameInFavorites(42))
	assert.False(t, s.IsGameInFavorites(43))
}

func Test_AddToFavoritesFailureLeavesStateAlone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			w.WriteHeader(400)
			fmt.Fprint(w, `{"message": "no such game"}`)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))

	err := s.AddToFavorites(bg, 42)
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeInvalidRequest))
	assert.False(t, s.IsGameInFavorites(42))
	assert.Empty(t, s.Favorites())
}

func Test_RemoveFromFavorites(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "game_id": 42}]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/users/favorites/42", func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "DELETE", r.Method)
		w.WriteHeader(204)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))
	assert.True(t, s.IsGameInFavorites(42))

	assert.NoError(t, s.RemoveFromFavorites(bg, 42))
	assert.False(t, s.IsGameInFavorites(42))
	assert.Empty(t, s.Favorites())
}

func Test_RemoveFromFavoritesFailureLeavesStateAlone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "game_id": 42}]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/users/favorites/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		fmt.Fprint(w, `{"message": "nope"}`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))

	err := s.RemoveFromFavorites(bg, 42)
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeServerError))
	assert.True(t, s.IsGameInFavorites(42))
}

func Test_CreateCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			fmt.Fprint(w, `{"id": 5, "name": "Retro", "description": "", "is_public": false}`)
			return
		}
		fmt.Fprint(w, `[]`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))

	created, err := s.CreateCollection(bg, shelfapi.CreateCollectionParams{Name: "Retro"})
	assert.NoError(t, err)
	assert.EqualValues(t, 5, created.ID)
	assert.Empty(t, created.Entries)

	collections := s.Collections()
	if assert.Len(t, collections, 1) {
		assert.EqualValues(t, 5, collections[0].ID)
		assert.Empty(t, collections[0].Entries)
	}
}

func Test_AddToCollectionRefreshesWholesale(t *testing.T) {
	added := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		if !added {
			fmt.Fprint(w, `[{"id": 5, "name": "Retro", "games": []}]`)
			return
		}
		// the authoritative view after the write, flat record shape
		fmt.Fprint(w, `[{"id": 5, "name": "Retro", "games": [
			{"id": 900, "game_id": 42, "status": "playing", "rating": 8}
		]}]`)
	})
	mux.HandleFunc("/api/collections/5/games", func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "POST", r.Method)
		added = true
		fmt.Fprint(w, `{"id": 900, "game_id": 42, "status": "playing", "rating": 8}`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))
	assert.False(t, s.IsGameInCollection(42))

	err := s.AddToCollection(bg, 5, 42, shelfapi.MembershipParams{
		Status: shelfapi.StatusPlaying,
		Rating: 8,
	})
	assert.NoError(t, err)

	// membership is visible once the mandated refresh lands
	assert.True(t, s.IsGameInCollection(42))
	collections := s.Collections()
	if assert.Len(t, collections, 1) && assert.Len(t, collections[0].Entries, 1) {
		entry := collections[0].Entries[0]
		assert.EqualValues(t, 42, entry.Game.ID)
		assert.EqualValues(t, shelfapi.StatusPlaying, entry.Membership.Status)
		assert.EqualValues(t, 8, entry.Membership.Rating)
	}
}

func Test_AddToCollectionDuplicate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 5, "name": "Retro", "games": [{"id": 42}]}]`)
	})
	mux.HandleFunc("/api/collections/5/games", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		fmt.Fprint(w, `{"message": "Validation error: unique constraint collection_games_unique"}`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))

	err := s.AddToCollection(bg, 5, 42, shelfapi.MembershipParams{})
	assert.True(t, shelfapi.HasCode(err, shelfapi.CodeDuplicateMembership))

	// local state untouched by the failed write
	if assert.Len(t, s.Collections(), 1) {
		assert.Len(t, s.Collections()[0].Entries, 1)
	}
}

func Test_UpdateGameInCollection(t *testing.T) {
	rating := 5
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/favorites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/collections", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"id": 5, "name": "Retro", "games": [{"game_id": 42, "rating": %d}]}]`, rating)
	})
	mux.HandleFunc("/api/collections/5/games/42", func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "PUT", r.Method)
		rating = 9
		fmt.Fprint(w, `{}`)
	})

	bg := context.Background()
	s := New()
	s.SessionChanged(bg, testClient(t, mux))

	err := s.UpdateGameInCollection(bg, 5, 42, shelfapi.MembershipParams{Rating: 9})
	assert.NoError(t, err)

	collections := s.Collections()
	if assert.Len(t, collections, 1) && assert.Len(t, collections[0].Entries, 1) {
		assert.EqualValues(t, 9, collections[0].Entries[0].Membership.Rating)
	}
}
