package collections

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

var args = struct {
	showGames *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("collections", "List your collections and what's in them.")
	args.showGames = cmd.Flag("games", "Also list each collection's games").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.showGames))
}

func Do(ctx *mansion.Context, showGames bool) error {
	client, err := ctx.AuthenticatedClient()
	if err != nil {
		return errors.WithStack(err)
	}

	s := store.New()
	s.SessionChanged(context.Background(), client)

	collections := s.Collections()
	comm.ResultOrPrint(collections, func() {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Public", "Games"})

		for _, collection := range collections {
			visibility := "no"
			if collection.Public {
				visibility = "yes"
			}
			table.Append([]string{
				fmt.Sprintf("%d", collection.ID),
				collection.Name,
				visibility,
				fmt.Sprintf("%d", len(collection.Entries)),
			})
		}
		table.Render()

		if showGames {
			for _, collection := range collections {
				printEntries(collection)
			}
		}

		comm.Statf("%d collections", len(collections))
	})
	return nil
}

func printEntries(collection *store.Collection) {
	if len(collection.Entries) == 0 {
		return
	}

	comm.Opf("%s", collection.Name)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Game ID", "Title", "Status", "Rating", "Hours", "Completed"})

	for _, entry := range collection.Entries {
		rating := ""
		if entry.Membership.Rating > 0 {
			rating = fmt.Sprintf("%d/10", entry.Membership.Rating)
		}
		hours := ""
		if entry.Membership.PlayTimeHours > 0 {
			hours = fmt.Sprintf("%.1f", entry.Membership.PlayTimeHours)
		}
		table.Append([]string{
			fmt.Sprintf("%d", entry.Game.ID),
			entry.Game.Title,
			string(entry.Membership.Status),
			rating,
			hours,
			entry.Membership.DateCompleted,
		})
	}
	table.Render()
}
