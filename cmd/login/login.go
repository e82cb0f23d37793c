package login

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
	"github.com/gameshelf/shelf/shelfapi"
)

var args = struct {
	email    *string
	password *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("login", "Connect shelf to your account and save credentials locally.")
	args.email = cmd.Flag("email", "Account email address").Required().String()
	args.password = cmd.Flag("password", "Account password (prompted for when omitted)").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.email, *args.password))
}

func Do(ctx *mansion.Context, email string, password string) error {
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return errors.Wrap(err, "reading password")
		}
	}

	client := ctx.NewClient("")
	res, err := client.LoginWithPassword(context.Background(), shelfapi.LoginWithPasswordParams{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = ctx.SaveCredentials(res.Token)
	if err != nil {
		return errors.Wrap(err, "saving credentials")
	}

	if res.User != nil {
		comm.Statf("Logged in as %s", res.User.Username)
	} else {
		comm.Statf("Logged in")
	}
	comm.Result(map[string]string{"status": "success"})
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	defer fmt.Fprintln(os.Stderr)

	buf, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(buf), nil
}
