package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"
	"github.com/sootra/accessibility-app/internal/config"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda function",
	}
	cmd.AddCommand(cmdLambdaHTTP())

	bindEnvMap(cmd, lambdaEnvMapString)

	return cmd
}

// cmdLambdaHTTP is the command for running the lambda-http mode.
func cmdLambdaHTTP() *cobra.Command {
	return &cobra.Command{
		Use: "http",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger = logger.With("mode", config.ModeLambdaHTTP, "payloadType", config.Lambda.PayloadType)

			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "failed to setup lambda")
			}
			fn, err := rt.LambdaHandler(config.Lambda.PayloadType)
			if err != nil {
				return err
			}

			logger.Info("lambda starting...")
			lambda.StartWithOptions(fn,
				lambda.WithContext(cmd.Context()))

			return nil
		},
	}
}
