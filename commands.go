package main

import (
	"github.com/gameshelf/shelf/cmd/collections"
	"github.com/gameshelf/shelf/cmd/favorite"
	"github.com/gameshelf/shelf/cmd/favorites"
	"github.com/gameshelf/shelf/cmd/games"
	"github.com/gameshelf/shelf/cmd/login"
	"github.com/gameshelf/shelf/cmd/logout"
	"github.com/gameshelf/shelf/cmd/mkcollection"
	"github.com/gameshelf/shelf/cmd/shelve"
	"github.com/gameshelf/shelf/cmd/unfavorite"
	"github.com/gameshelf/shelf/cmd/version"
	"github.com/gameshelf/shelf/mansion"
)

// Each of these specify their own arguments and flags in
// their own package.
func registerCommands(ctx *mansion.Context) {
	login.Register(ctx)
	logout.Register(ctx)

	games.Register(ctx)

	favorites.Register(ctx)
	favorite.Register(ctx)
	unfavorite.Register(ctx)

	collections.Register(ctx)
	mkcollection.Register(ctx)
	shelve.Register(ctx)

	version.Register(ctx)
}
