package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/gameshelf/shelf/comm"
	"github.com/gameshelf/shelf/mansion"
)

var (
	version = "head" // set by command-line on CI release builds
	app     = kingpin.New("shelf", "Your personal game collection, from the command line")
)

var appArgs = struct {
	identity *string
	address  *string
	quiet    *bool
	verbose  *bool
	json     *bool
	panic    *bool
}{
	app.Flag("identity", "Path to the credentials file").Default(defaultKeyPath()).Short('i').String(),
	app.Flag("address", "Shelf API server to talk to").Default("https://api.gameshelf.example").Hidden().String(),
	app.Flag("quiet", "Hide non-essential output").Short('q').Bool(),
	app.Flag("verbose", "Display as much extra info as possible").Short('v').Bool(),
	app.Flag("json", "Enable machine-readable JSON-lines output").Short('j').Bool(),
	app.Flag("panic", "Panic on error instead of exiting cleanly").Hidden().Bool(),
}

func defaultKeyPath() string {
	configPath := os.Getenv("XDG_CONFIG_HOME")
	if configPath == "" {
		home, _ := os.UserHomeDir()
		configPath = filepath.Join(home, ".config")
	}
	return filepath.Join(configPath, "shelf", "creds")
}

func main() {
	app.HelpFlag.Short('h')
	app.Version(fmt.Sprintf("%s, built for %s-%s", version, runtime.GOOS, runtime.GOARCH))
	app.VersionFlag.Short('V')

	ctx := mansion.NewContext(app)
	ctx.Version = version
	ctx.VersionString = version
	registerCommands(ctx)

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx.Identity = *appArgs.identity
	ctx.Address = *appArgs.address
	ctx.Quiet = *appArgs.quiet
	ctx.Verbose = *appArgs.verbose
	ctx.JSON = *appArgs.json
	comm.Configure(*appArgs.quiet, *appArgs.verbose, *appArgs.json, *appArgs.panic)

	if do, ok := ctx.Commands[cmd]; ok {
		do(ctx)
	} else {
		comm.Dief("Unknown command: %s", cmd)
	}
}
