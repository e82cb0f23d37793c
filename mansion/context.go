// Package mansion is where shelf commands live between registration and
// dispatch: the kingpin application, global flags, and the factory for
// authenticated API clients.
package mansion

import (
	"fmt"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/shelfapi"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type DoCommand func(ctx *Context)

type Context struct {
	App      *kingpin.Application
	Commands map[string]DoCommand

	// Identity is the path to the credentials file
	Identity string

	// Address is the URL of the shelf API server we're talking to
	Address string

	// VersionString is the complete version string
	VersionString string

	// Version is just the version number, as a string
	Version string

	// Quiet silences all output
	Quiet bool

	// Verbose enables chatty output
	Verbose bool

	// JSON enables machine-readable output
	JSON bool
}

func NewContext(app *kingpin.Application) *Context {
	return &Context{
		App:      app,
		Commands: make(map[string]DoCommand),
	}
}

func (ctx *Context) Register(clause *kingpin.CmdClause, do DoCommand) {
	ctx.Commands[clause.FullCommand()] = do
}

func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Verbose || ctx.JSON {
			comm.Dief("%+v", err)
		} else {
			comm.Dief("%s", err)
		}
	}
}

func (ctx *Context) UserAgent() string {
	return fmt.Sprintf("shelf/%s", ctx.VersionString)
}

// NewClient builds an API client for a given bearer token. An empty
// token yields a client fit for unauthenticated calls only.
func (ctx *Context) NewClient(token string) *shelfapi.Client {
	client := shelfapi.ClientWithToken(token)
	client.SetServer(ctx.Address)
	client.UserAgent = ctx.UserAgent()
	return client
}
