package favorites

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/store"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("favorites", "List the games in your wishlist/favorites.")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *mansion.Context) error {
	client, err := ctx.AuthenticatedClient()
	if err != nil {
		return errors.WithStack(err)
	}

	s := store.New()
	s.SessionChanged(context.Background(), client)

	favorites := s.Favorites()
	comm.ResultOrPrint(favorites, func() {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Game ID", "Title"})

		for _, fav := range favorites {
			title := ""
			if fav.Game != nil {
				title = fav.Game.Title
			}
			table.Append([]string{
				fmt.Sprintf("%d", fav.GameID),
				title,
			})
		}

		table.Render()
		comm.Statf("%d favorites", len(favorites))
	})
	return nil
}
