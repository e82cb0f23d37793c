package mkcollection

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/shelfapi"
	"github.com/gameshelf/shelf/store"
)

var args = struct {
	name        *string
	description *string
	public      *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("mkcollection", "Create a new (empty) collection.")
	args.name = cmd.Arg("name", "Name of the new collection").Required().String()
	args.description = cmd.Flag("description", "What this collection is about").String()
	args.public = cmd.Flag("public", "Make the collection visible to others").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, shelfapi.CreateCollectionParams{
		Name:        *args.name,
		Description: *args.description,
		Public:      *args.public,
	}))
}

func Do(ctx *mansion.Context, params shelfapi.CreateCollectionParams) error {
	client, err := ctx.AuthenticatedClient()
	if err != nil {
		return errors.WithStack(err)
	}

	bg := context.Background()
	s := store.New()
	s.SessionChanged(bg, client)

	collection, err := s.CreateCollection(bg, params)
	if err != nil {
		return errors.WithStack(err)
	}

	comm.Statf("Created collection %q (#%d)", collection.Name, collection.ID)
	comm.Result(map[string]interface{}{"id": collection.ID})
	return nil
}
