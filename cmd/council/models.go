package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/llmcouncil/council"
	"github.com/kbukum/llmcouncil/logger"
)

func newModelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List enabled providers and the models each one offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}
			c, err := council.New(cfg, council.WithLogger(logger.NewNop()))
			if err != nil {
				return err
			}
			printModels(cmd.OutOrStdout(), c.Providers())
			return nil
		},
	}
}

func printModels(w io.Writer, providers []council.Provider) {
	for _, p := range providers {
		fmt.Fprintf(w, "%s (%s) → %s\n", p.Display, p.Name, p.Endpoint)
		for _, m := range p.Models {
			mark := " "
			if m.ID == p.Model {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-24s %s\n", mark, m.ID, m.Label)
		}
	}
}
