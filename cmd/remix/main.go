// Command remix applies mood presets to WAV files, lists the available
// moods, or serves the remix HTTP API.
//
// Examples:
//
//	remix process in.wav out.wav --mood happy --pitch 2
//	remix process in.wav out.wav --mood chill --tempo 0.9 --seed 7
//	remix moods
//	remix serve --config remix.yaml
package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Config   string           `short:"c" type:"path" help:"Path to YAML config file (optional)"`
	LogLevel string           `name:"log-level" help:"Override log level (debug, info, warn, error)"`
	Version  kong.VersionFlag `short:"v" help:"Show version information"`

	Process ProcessCmd `cmd:"" help:"Remix a WAV file"`
	Moods   MoodsCmd   `cmd:"" help:"List available moods"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP remix service"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("remix"),
		kong.Description("Mood-based audio remixing"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx.FatalIfErrorf(ctx.Run(cli))
}
