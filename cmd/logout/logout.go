package logout

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("logout", "Expire the current session and forget saved credentials.")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *mansion.Context) error {
	if !ctx.HasSavedCredentials() {
		comm.Logf("No saved credentials, nothing to do.")
		return nil
	}

	// best-effort server-side invalidation: the local teardown happens
	// regardless
	client, err := ctx.AuthenticatedClient()
	if err == nil {
		err = client.Logout(context.Background())
	}
	if err != nil {
		comm.Warnf("Couldn't expire the session server-side: %s", err)
	}

	err = ctx.ForgetCredentials()
	if err != nil {
		return errors.WithStack(err)
	}

	comm.Statf("You've successfully logged out")
	comm.Result(map[string]string{"status": "success"})
	return nil
}
