package shelve

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/shelfapi"
	"github.com/gameshelf/shelf/store"
)

var args = struct {
	collectionID *int64
	gameID       *int64
	update       *bool
	status       *string
	rating       *int64
	notes        *string
	hours        *float64
	completed    *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("shelve", "Add a game to one of your collections, or update it there.")
	args.collectionID = cmd.Arg("collection-id", "Which collection to file the game under").Required().Int64()
	args.gameID = cmd.Arg("game-id", "Which game, by catalog id").Required().Int64()
	args.update = cmd.Flag("update", "Update the game's metadata instead of adding it").Bool()
	args.status = cmd.Flag("status", "One of: owned, wishlist, playing, completed, dropped").String()
	args.rating = cmd.Flag("rating", "Rating from 1 to 10").Int64()
	args.notes = cmd.Flag("notes", "Personal notes").String()
	args.hours = cmd.Flag("hours", "Play time, in hours").Float64()
	args.completed = cmd.Flag("completed", "Completion date (YYYY-MM-DD)").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.collectionID, *args.gameID, *args.update, shelfapi.MembershipParams{
		Status:        shelfapi.Status(*args.status),
		Rating:        *args.rating,
		PersonalNotes: *args.notes,
		PlayTimeHours: *args.hours,
		DateCompleted: *args.completed,
	}))
}

func Do(ctx *mansion.Context, collectionID int64, gameID int64, update bool, params shelfapi.MembershipParams) error {
	client, err := ctx.AuthenticatedClient()
	if err != nil {
		return errors.WithStack(err)
	}

	bg := context.Background()
	s := store.New()
	s.SessionChanged(bg, client)

	if update {
		err = s.UpdateGameInCollection(bg, collectionID, gameID, params)
	} else {
		err = s.AddToCollection(bg, collectionID, gameID, params)
	}

	if shelfapi.HasCode(err, shelfapi.CodeDuplicateMembership) {
		comm.Logf("Game %d is already in collection %d, pass --update to change its metadata.", gameID, collectionID)
		return errors.WithStack(err)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	if update {
		comm.Statf("Updated game %d in collection %d", gameID, collectionID)
	} else {
		comm.Statf("Added game %d to collection %d", gameID, collectionID)
	}
	comm.Result(map[string]interface{}{
		"collectionId": collectionID,
		"gameId":       gameID,
	})
	return nil
}
