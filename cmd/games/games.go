package games

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/shelfapi"
	"github.com/gameshelf/shelf/store"
)

var args = struct {
	platform *string
	genre    *string
	search   *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("games", "Browse the game catalog.")
	args.platform = cmd.Flag("platform", "Only show games for a given platform").String()
	args.genre = cmd.Flag("genre", "Only show games of a given genre").String()
	args.search = cmd.Flag("search", "Only show games matching a search term").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, shelfapi.ListGamesParams{
		Platform: *args.platform,
		Genre:    *args.genre,
		Search:   *args.search,
	}))
}

func Do(ctx *mansion.Context, params shelfapi.ListGamesParams) error {
	bg := context.Background()

	// the catalog is public, but with a session we can flag what's
	// already on the user's shelf
	s := store.New()
	client := ctx.NewClient("")
	if ctx.HasSavedCredentials() {
		authed, err := ctx.AuthenticatedClient()
		if err == nil {
			client = authed
			s.SessionChanged(bg, authed)
		}
	}

	games, err := client.ListGames(bg, params)
	if err != nil {
		return errors.WithStack(err)
	}

	comm.ResultOrPrint(games, func() {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Platform", "Genre", "Shelved"})

		for _, game := range games {
			table.Append([]string{
				fmt.Sprintf("%d", game.ID),
				game.Title,
				game.Platform,
				game.Genre,
				shelvedMarks(s, game.ID),
			})
		}

		table.Render()
		comm.Statf("%d games", len(games))
	})
	return nil
}

func shelvedMarks(s *store.Store, gameID int64) string {
	marks := ""
	if s.IsGameInFavorites(gameID) {
		marks += "♥"
	}
	if s.IsGameInCollection(gameID) {
		marks += "▣"
	}
	return marks
}
