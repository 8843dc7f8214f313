package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSaveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save FILE",
		Short: "Store a saved ship in the database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.app.readShip(args[0])
			if err != nil {
				return err
			}
			repo, done, err := opts.app.shipRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			if err := repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %q (%s)\n", s.Name, s.ID())
			return nil
		},
	}
}

func newLoadCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Fetch a ship from the database into a save file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := opts.app.shipRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			s, err := repo.LoadByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := opts.app.writeShip(out, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %q -> %s\n", s.Name, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "ship.sav", "save file to write")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the ships stored in the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := opts.app.shipRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			ships, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tPLAYER\tVERSION\tUPDATED")
			for _, s := range ships {
				fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%s\n", s.Name, s.ID, s.Player, s.FormatVersion, s.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a stored ship from the database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid ship id %q: %w", args[0], err)
			}
			repo, done, err := opts.app.shipRepo(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			if err := repo.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
