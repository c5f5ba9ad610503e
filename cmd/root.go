// Package cmd provides the entrypoint for the accessibility-app cli.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sootra/accessibility-app/internal/config"
	"github.com/sootra/accessibility-app/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         = helpers.NewNoopLogger()
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
	// Count registers an int as a repeatable counter flag (-vvv).
	Count bool
}

// New returns the root command for the accessibility-app.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "accessibility-app",
		Short:        "Validates accessibility part 1 submissions and dispatches them to analysis",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = helpers.NewJSONLogger(config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace).
				With("mode", config.Global.Mode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return cmdService().RunE(cmd, args)
			case config.ModeLambdaHTTP:
				return cmdLambdaHTTP().RunE(cmd, args)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Environment & defaults; the configuration file is loaded once flags are parsed
	if err := errors.Join(
		config.LoadDotEnv(".env"),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
	)

	return cmd
}

// loadConfig applies the configuration file named by --config, then restores the values given
// on the command line or through environment variables so they keep precedence over the file.
func loadConfig(cmd *cobra.Command) error {
	type override struct {
		flag   *pflag.Flag
		values []string
		env    bool
	}
	var overrides []override
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if f.Changed {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				overrides = append(overrides, override{flag: f, values: sv.GetSlice()})
			} else {
				overrides = append(overrides, override{flag: f, values: []string{f.Value.String()}})
			}
			return
		}
		if env, ok := boundEnvVars[f.Name]; ok {
			if v, found := os.LookupEnv(env); found {
				overrides = append(overrides, override{flag: f, values: []string{v}, env: true})
			}
		}
	})

	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		return err
	}

	for _, o := range overrides {
		var err error
		if sv, ok := o.flag.Value.(pflag.SliceValue); ok && !o.env {
			err = sv.Replace(o.values)
		} else {
			err = o.flag.Value.Set(o.values[0])
		}
		if err != nil {
			return fmt.Errorf("failed to apply --%s: %w", o.flag.Name, err)
		}
	}
	return nil
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapInt)
	bindEnvMap(cmd, envMapStringSlice)
}
