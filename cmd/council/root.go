package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/llmcouncil/config"
	"github.com/kbukum/llmcouncil/council"
)

const serviceName = "council"

type rootOptions struct {
	configFile string
	envFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Ask several LLM providers the same question concurrently",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: searched under ./cmd/council, ./config, .)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", ".env file with API keys and COUNCIL_* overrides")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newAskCmd(opts),
		newServeCmd(opts),
		newModelsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the council config. Defaults and validation happen in
// bootstrap.NewApp.
func (o *rootOptions) load() (*council.Config, error) {
	cfg := &council.Config{}
	var lopts []config.LoaderOption
	if o.configFile != "" {
		lopts = append(lopts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		lopts = append(lopts, config.WithEnvFile(o.envFile))
	}
	if _, err := config.LoadConfig(serviceName, cfg, lopts...); err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}
