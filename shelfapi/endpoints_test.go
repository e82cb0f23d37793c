package shelfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := ClientWithToken("sesame")
	client.SetServer(server.URL)
	// keep rate-limit retries quick in tests
	client.RetryPatterns = []time.Duration{time.Millisecond, time.Millisecond}
	return client, server
}

func Test_ListGamesShapes(t *testing.T) {
	games := `[{"id": 1, "title": "Outer Wilds", "platform": "PC", "genre": "Adventure"}]`

	// the server wraps (or doesn't wrap) list responses depending on
	// its version; all three shapes must decode the same way
	for _, body := range []string{
		games,
		fmt.Sprintf(`{"games": %s}`, games),
		fmt.Sprintf(`{"data": %s}`, games),
	} {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.EqualValues(t, "/api/games", r.URL.Path)
			fmt.Fprint(w, body)
		}))

		res, err := client.ListGames(context.Background(), ListGamesParams{})
		assert.NoError(t, err)
		if assert.Len(t, res, 1) {
			assert.EqualValues(t, 1, res[0].ID)
			assert.EqualValues(t, "Outer Wilds", res[0].Title)
		}
	}
}

func Test_ListGamesFilters(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "Switch", r.URL.Query().Get("platform"))
		assert.EqualValues(t, "zelda", r.URL.Query().Get("search"))
		fmt.Fprint(w, `[]`)
	}))

	_, err := client.ListGames(context.Background(), ListGamesParams{
		Platform: "Switch",
		Search:   "zelda",
	})
	assert.NoError(t, err)
}

func Test_BearerAuthentication(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "Bearer sesame", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))

	_, err := client.ListFavorites(context.Background())
	assert.NoError(t, err)
}

func Test_AddFavoritePayload(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "POST", r.Method)
		assert.EqualValues(t, "/api/users/favorites", r.URL.Path)

		body, _ := ioutil.ReadAll(r.Body)
		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.EqualValues(t, map[string]interface{}{"game_id": float64(42)}, payload)

		fmt.Fprint(w, `{"id": 7, "game_id": 42}`)
	}))

	entry, err := client.AddFavorite(context.Background(), 42)
	assert.NoError(t, err)
	assert.EqualValues(t, 7, entry.ID)
	assert.EqualValues(t, 42, entry.GameID)
}

func Test_UpdateCollectionGameOmitsUnset(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "PUT", r.Method)
		assert.EqualValues(t, "/api/collections/5/games/42", r.URL.Path)

		body, _ := ioutil.ReadAll(r.Body)
		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.EqualValues(t, map[string]interface{}{"status": "playing"}, payload)

		fmt.Fprint(w, `{}`)
	}))

	err := client.UpdateCollectionGame(context.Background(), 5, 42, MembershipParams{
		Status: StatusPlaying,
	})
	assert.NoError(t, err)
}

func Test_UnauthenticatedResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		fmt.Fprint(w, `{"message": "token expired"}`)
	}))

	_, err := client.ListCollections(context.Background())
	assert.Error(t, err)
	assert.True(t, HasCode(err, CodeUnauthenticated))

	ae, ok := AsAPIError(err)
	assert.True(t, ok)
	assert.Contains(t, ae.Messages, "token expired")
}

func Test_DuplicateMembershipFromGeneric500(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		fmt.Fprint(w, `{"message": "SQLITE_CONSTRAINT: unique constraint failed"}`)
	}))

	err := client.AddCollectionGame(context.Background(), 5, 42, MembershipParams{})
	assert.Error(t, err)
	assert.True(t, HasCode(err, CodeDuplicateMembership))
}

func Test_RateLimitRetry(t *testing.T) {
	attempts := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(429)
			return
		}
		fmt.Fprint(w, `[]`)
	}))

	_, err := client.ListFavorites(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 3, attempts)
}

func Test_NetworkErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nobody home

	client := ClientWithToken("sesame")
	client.SetServer(server.URL)

	_, err := client.ListFavorites(context.Background())
	assert.Error(t, err)
	assert.True(t, HasCode(err, CodeNetworkError))
}

func Test_DeleteFavoriteEmptyBody(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.EqualValues(t, "DELETE", r.Method)
		assert.EqualValues(t, "/api/users/favorites/42", r.URL.Path)
		w.WriteHeader(204)
	}))

	assert.NoError(t, client.RemoveFavorite(context.Background(), 42))
}
