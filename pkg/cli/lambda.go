package cli

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/m-mizutani/ctxlog"
	lambdactl "github.com/m-mizutani/pushbell/pkg/controller/lambda"
	"github.com/urfave/cli/v3"
)

func cmdLambda() *cli.Command {
	var relayCfg relayConfig

	return &cli.Command{
		Name:  "lambda",
		Usage: "Serve webhooks as an AWS Lambda function URL handler",
		Flags: relayCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			// Delivery and reporting stay synchronous: the function is frozen
			// once it returns and StartWithOptions never does
			relayCfg.sentry.FlushOnReport = true
			relayUC, cleanup, err := relayCfg.build(ctx)
			defer cleanup()
			if err != nil {
				return err
			}

			handler := lambdactl.NewHandler(relayUC)

			ctxlog.From(ctx).Info("Lambda starting")
			awslambda.StartWithOptions(handler.Handle, awslambda.WithContext(ctx))
			return nil
		},
	}
}
