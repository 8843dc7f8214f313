package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	app        *app
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "shipyard",
		Short:        "Outfit, inspect, and store ships and their installed devices.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.configPath)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.app != nil {
				opts.app.close()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to configuration file (defaults and SHIPYARD_* environment when empty)")

	root.AddCommand(
		newOutfitCmd(opts),
		newInspectCmd(opts),
		newCycleCmd(opts),
		newSelectCmd(opts),
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newRandomCmd(opts),
		newSaveCmd(opts),
		newLoadCmd(opts),
		newListCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}
