package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/cli/config"
	"github.com/minutia-lab/minutia/pkg/utils/errutil"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "minutia",
		Usage:   "Meeting knowledge assistant: transcribe, summarize and query meeting recordings",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting minutia", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdProcess(),
			cmdAsk(),
			cmdMeetings(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
