package unfavorite

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/store"
)

var args = struct {
	gameID *int64
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("unfavorite", "Remove a game from your favorites.")
	args.gameID = cmd.Arg("game-id", "Which game to remove, by catalog id").Required().Int64()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.gameID))
}

func Do(ctx *mansion.Context, gameID int64) error {
	client, err := ctx.AuthenticatedClient()
	if err != nil {
		return errors.WithStack(err)
	}

	bg := context.Background()
	s := store.New()
	s.SessionChanged(bg, client)

	if !s.IsGameInFavorites(gameID) {
		comm.Logf("Game %d isn't in your favorites.", gameID)
		return nil
	}

	err = s.RemoveFromFavorites(bg, gameID)
	if err != nil {
		return errors.WithStack(err)
	}

	comm.Statf("Removed game %d from your favorites", gameID)
	comm.Result(map[string]interface{}{"gameId": gameID})
	return nil
}
