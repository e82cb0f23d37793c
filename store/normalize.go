package store

import (
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/gameshelf/shelf/shelfapi"
)

// An Entry is the canonical form of one collection membership: the game
// itself plus the collection-specific metadata. Every raw record coming
// off the wire is normalized to this shape exactly once, at ingestion.
// Read sites never look at raw records.
type Entry struct {
	Game       shelfapi.Game
	Membership shelfapi.Membership
}

// A Collection is the store's normalized view of a server collection.
type Collection struct {
	ID          int64
	Name        string
	Description string
	Public      bool
	Entries     []Entry
}

// Keys under which server versions nest the game object of a join
// record, and the join metadata of a game object, respectively.
var (
	nestedGameKeys       = []string{"Game", "game"}
	nestedMembershipKeys = []string{"CollectionGame", "collection_game", "membership"}
)

func normalizeCollections(collections []*shelfapi.Collection) []*Collection {
	out := make([]*Collection, 0, len(collections))
	for _, c := range collections {
		out = append(out, normalizeCollection(c))
	}
	return out
}

func normalizeCollection(c *shelfapi.Collection) *Collection {
	out := &Collection{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Public:      c.Public,
	}
	for _, rec := range c.Games {
		if entry, ok := normalizeRecord(rec); ok {
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}

// normalizeRecord untangles the three membership shapes the server is
// known to emit: a bare game object, a join record with the game nested
// under a key, and a flat record mixing game and membership fields.
//
// The game id is located with a fixed precedence: the nested game
// object's id, else a game_id field, else the record's own id. A record
// where none of those resolves is dropped.
func normalizeRecord(rec shelfapi.GameRecord) (Entry, bool) {
	var entry Entry

	gameSource := map[string]interface{}(rec)
	var nestedGame map[string]interface{}
	for _, key := range nestedGameKeys {
		if m, ok := rec[key].(map[string]interface{}); ok {
			nestedGame = m
			break
		}
	}

	var gameID int64
	var found bool
	if nestedGame != nil {
		gameSource = nestedGame
		gameID, found = asInt64(nestedGame["id"])
	}
	if !found {
		gameID, found = asInt64(rec["game_id"])
	}
	if !found {
		gameID, found = asInt64(rec["id"])
	}
	if !found || gameID == 0 {
		return entry, false
	}

	decodeLoose(gameSource, &entry.Game)

	// join metadata may sit in a nested record or on the record itself
	memSource := map[string]interface{}(rec)
	for _, key := range nestedMembershipKeys {
		if m, ok := rec[key].(map[string]interface{}); ok {
			memSource = m
			break
		}
	}
	decodeLoose(memSource, &entry.Membership)

	// the flat shape's own id is the join row's, not the game's
	entry.Game.ID = gameID
	return entry, true
}

// decodeLoose fills dst from a raw map on a best-effort basis. A field
// that won't coerce is left at its zero value; ingestion never fails a
// whole record over one bad field.
func decodeLoose(src map[string]interface{}, dst interface{}) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	_ = decoder.Decode(src)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
