package rank

import (
	"context"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/cardrank/cmd/app/cli"
	"exusiai.dev/cardrank/internal/app/appconfig"
	"exusiai.dev/cardrank/internal/model/types"
	"exusiai.dev/cardrank/internal/service"
	"exusiai.dev/cardrank/internal/util/rekuest"
)

const (
	KindRanking     = "ranking"
	KindWeighted    = "weighted"
	KindOriginality = "originality"
	KindTiers       = "tiers"
)

type CommandDeps struct {
	fx.In

	Config             *appconfig.Config
	RankingService     *service.Ranking
	WeightedService    *service.WeightedRanking
	OriginalityService *service.Originality
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "rank",
		Usage: "compute a ranking once and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "one of ranking, weighted, originality, tiers",
				Value: KindRanking,
			},
			&cli.BoolFlag{
				Name:  "deduplicate",
				Usage: "count a card once per deck",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "inclusive start day (YYYY-MM-DD), ranking only",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "exclusive end day (YYYY-MM-DD), ranking only",
			},
		},
		Action: func(c *cli.Context) error {
			req := types.RankingRequest{
				Deduplicate: c.Bool("deduplicate"),
				From:        c.String("from"),
				To:          c.String("to"),
			}
			if err := rekuest.Validate.Struct(&req); err != nil {
				return errors.Wrap(err, "invalid arguments")
			}

			var deps CommandDeps
			stop, err := cliapp.Start(c.Context, fx.Populate(&deps))
			if err != nil {
				return err
			}
			defer stop()

			return run(c.Context, os.Stdout, deps, c.String("kind"), req)
		},
	}
}

func run(ctx context.Context, w io.Writer, deps CommandDeps, kind string, req types.RankingRequest) error {
	var out any
	switch kind {
	case KindRanking:
		entry, err := deps.RankingService.GetRanking(ctx, req.Query(deps.Config.TimeZone.Location))
		if err != nil {
			return err
		}
		out = entry.Value
	case KindWeighted:
		entry, err := deps.WeightedService.GetWeightedRanking(ctx, req.Deduplicate)
		if err != nil {
			return err
		}
		out = entry.Value
	case KindOriginality:
		entry, err := deps.OriginalityService.GetOriginalityMap(ctx, req.Deduplicate)
		if err != nil {
			return err
		}
		out = entry.Value
	case KindTiers:
		out = deps.OriginalityService.GetTiers()
	default:
		return errors.Errorf("unknown kind %q", kind)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
