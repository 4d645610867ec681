package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/cardrank/cmd/app/cli/rank"
	"exusiai.dev/cardrank/cmd/app/server"
	"exusiai.dev/cardrank/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "cardrank",
		Description: "Card usage rankings, weighted meta snapshots and originality scores computed from recorded matches. Built with Go, fiber, bun and go.uber.org/fx. Uses Redis for shared result caching.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			rank.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
