package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/ship"
)

func newOutfitCmd(opts *rootOptions) *cobra.Command {
	var name, out string
	var player bool
	cmd := &cobra.Command{
		Use:   "outfit LOADOUT",
		Short: "Build a new ship from a loadout and write it to a save file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			l, err := a.loadout(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = l.Name
			}
			s := ship.New(name, player, a.classes, a.shipOptions(), a.logger)
			if err := s.Outfit(l); err != nil {
				return err
			}
			if err := a.writeShip(out, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "outfitted %q (%s) with %d slots -> %s\n", s.Name, s.ID(), s.Devices.Count(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "ship name (defaults to the loadout name)")
	cmd.Flags().StringVarP(&out, "out", "o", "ship.sav", "save file to write")
	cmd.Flags().BoolVar(&player, "player", false, "mark the ship as the player's")
	return cmd
}

func writeStatus(w io.Writer, st ship.Status, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be yaml or json", format)
	}
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the devices, roles, and power budget of a saved ship.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.app.readShip(args[0])
			if err != nil {
				return err
			}
			s.Update()
			return writeStatus(cmd.OutOrStdout(), s.Status(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

// editShip loads path, applies fn, and writes the ship back.
func editShip(opts *rootOptions, path string, fn func(*ship.Ship) error) error {
	s, err := opts.app.readShip(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return opts.app.writeShip(path, s)
}

func newCycleCmd(opts *rootOptions) *cobra.Command {
	var dir, steps int
	cmd := &cobra.Command{
		Use:   "cycle FILE weapon|missile",
		Short: "Step the primary weapon or the missile selection of a saved ship.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editShip(opts, args[0], func(s *ship.Ship) error {
				var step func()
				var role device.Role
				switch args[1] {
				case "weapon":
					step = func() { s.Devices.ReadyNextWeapon(s, dir) }
					role = device.RolePrimaryWeapon
				case "missile":
					step = func() { s.Devices.ReadyNextMissile(s, dir) }
					role = device.RoleMissileWeapon
				default:
					return fmt.Errorf("unknown selection %q: must be weapon or missile", args[1])
				}
				for i := 0; i < steps; i++ {
					step()
				}
				slot := s.Devices.NamedIndex(role)
				if slot == device.NoSlot {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: none\n", role)
					return nil
				}
				dev := s.Devices.Slot(slot)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: slot %d %s variant %d\n", role, slot, dev.ID(), dev.Variant())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&dir, "dir", 1, "direction: 1 forward, -1 backward")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of steps")
	return cmd
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var variant int
	cmd := &cobra.Command{
		Use:   "select FILE SLOT",
		Short: "Make the weapon or launcher in SLOT the active one.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid slot %q: %w", args[1], err)
			}
			if variant < 0 {
				return fmt.Errorf("--variant must be >= 0, got %d", variant)
			}
			return editShip(opts, args[0], func(s *ship.Ship) error {
				role := s.Devices.SelectWeapon(s, slot, variant)
				if role == device.RoleNone {
					return fmt.Errorf("slot %d holds no weapon or launcher", slot)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: slot %d\n", role, slot)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&variant, "variant", 0, "launcher variant steps past the first")
	return cmd
}

func newInstallCmd(opts *rootOptions) *cobra.Command {
	var slot int
	cmd := &cobra.Command{
		Use:   "install FILE INSTANCE_ID",
		Short: "Install a device item from the ship's hold; it becomes the active device of its role.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if slot < device.NoSlot {
				return fmt.Errorf("--slot must be >= 0, got %d", slot)
			}
			return editShip(opts, args[0], func(s *ship.Ship) error {
				got, err := s.Install(args[1], slot)
				if err != nil {
					return err
				}
				dev := s.Devices.Slot(got)
				fmt.Fprintf(cmd.OutOrStdout(), "installed %s in slot %d\n", dev.ID(), got)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&slot, "slot", device.NoSlot, "slot to install into (default: first free slot)")
	return cmd
}

func newUninstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall FILE SLOT",
		Short: "Remove the device in SLOT; the item stays in the ship's hold.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid slot %q: %w", args[1], err)
			}
			return editShip(opts, args[0], func(s *ship.Ship) error {
				cat, err := s.Uninstall(slot)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "uninstalled %s from slot %d\n", cat, slot)
				return nil
			})
		},
	}
}

func newRandomCmd(opts *rootOptions) *cobra.Command {
	var enabledOnly bool
	cmd := &cobra.Command{
		Use:   "random FILE",
		Short: "Pick a random installed device, as a hit would.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.app.readShip(args[0])
			if err != nil {
				return err
			}
			slot := s.RandomDevice(opts.app.randomSource(), enabledOnly)
			if slot == device.NoSlot {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slot %d %s\n", slot, s.Devices.Slot(slot).ID())
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "consider enabled devices only")
	return cmd
}
