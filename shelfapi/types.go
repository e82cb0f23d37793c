package shelfapi

// A Game is a catalog entry. Games are server-owned: clients never edit
// a game's own fields.
type Game struct {
	ID int64 `json:"id"`

	Title    string `json:"title"`
	Platform string `json:"platform"`
	Genre    string `json:"genre"`

	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
}

// A FavoriteEntry associates the current user to a game. At most one
// exists per (user, game) pair, enforced server-side.
type FavoriteEntry struct {
	ID     int64 `json:"id"`
	GameID int64 `json:"game_id"`

	// Game is embedded by some server versions, absent in others.
	Game *Game `json:"game"`
}

// A Collection is a user-owned, named set of games with per-game
// metadata.
type Collection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"is_public"`

	// Games is the collection's membership list, kept loosely typed:
	// depending on the server version each record is a bare game
	// object, a join record with the game nested under a key, or a
	// flat record mixing game and membership fields. See the store's
	// normalization for the one place this gets untangled.
	Games []GameRecord `json:"games"`
}

// A GameRecord is one raw entry of a collection's membership list.
type GameRecord map[string]interface{}

// Membership is the collection-specific metadata attached to a game.
// Zero values mean "not set".
type Membership struct {
	Status        Status  `json:"status"`
	Rating        int64   `json:"rating"`
	PersonalNotes string  `json:"personal_notes"`
	PlayTimeHours float64 `json:"play_time_hours"`
	DateCompleted string  `json:"date_completed"`
}

// Status says where a game sits in a collection.
type Status string

const (
	StatusOwned     Status = "owned"
	StatusWishlist  Status = "wishlist"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// A User is the owner of the current session.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse is what a successful password login returns.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
