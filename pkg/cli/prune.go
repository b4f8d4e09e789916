package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/cli/config"
	"github.com/secmon-lab/regform/pkg/usecase"
	"github.com/secmon-lab/regform/pkg/utils/logging"
	"github.com/secmon-lab/regform/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdPrune() *cli.Command {
	var olderThan time.Duration
	var withErrorsOnly bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "older-than",
			Usage:       "Remove forms not updated within this duration",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("REGFORM_PRUNE_OLDER_THAN"),
			Destination: &olderThan,
		},
		&cli.BoolFlag{
			Name:        "with-errors-only",
			Usage:       "Remove only forms that still have outstanding errors",
			Destination: &withErrorsOnly,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "prune",
		Usage: "Remove abandoned form state",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, logging.Default())

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			n, err := usecase.New(repo).Prune.PruneForms(ctx, olderThan, withErrorsOnly)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(color.Output, "%s %d form(s) older than %s\n",
				color.GreenString("pruned"), n, olderThan)
			return nil
		},
	}
}
