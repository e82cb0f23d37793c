package version

import (
	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("version", "Print the version of shelf").Hidden()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	comm.Logf("%s", ctx.VersionString)
	comm.Result(ctx.VersionString)
}
