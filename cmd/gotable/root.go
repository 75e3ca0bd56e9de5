package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/gotable"
)

// rootOptions holds global flag values and the configuration loaded before
// any subcommand runs.
type rootOptions struct {
	envFiles []string
	json     bool

	cfg    gotable.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gotable",
		Short: "Render in-memory listings in the terminal",
		Long: `gotable loads records from a JSON file or a sqlite table and renders one
page of them the way a listing screen would: filtered by a search query,
sorted by a column and sliced into pages with a windowed page navigation.

Defaults come from GOTABLE_* environment variables and dotenv files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gotable.LoadConfig(opts.envFiles...)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			opts.cfg = cfg
			opts.logger = cfg.Logger()
			opts.logger.SetOutput(cmd.ErrOrStderr())

			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load, missing files are skipped")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "output as JSON")

	cmd.AddCommand(newListCmd(opts))

	return cmd
}
