package main

import (
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <run file>",
		Short: "Check that a run file describes a model that can run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := root.loadRun(args[0])
			if err != nil {
				return err
			}

			_, err = r.BuildMultizone()
			if err != nil {
				return err
			}

			times, err := r.Times()
			if err != nil {
				return err
			}

			cmd.Printf("%s: %d zones, %d elements, %d outputs up to %g Gyr\n",
				r.Name, len(r.Zones), len(r.Elements), len(times),
				times[len(times)-1])

			return nil
		},
	}
}

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run file>",
		Short: "Print a run file with its defaults and overrides filled in.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := root.loadRun(args[0])
			if err != nil {
				return err
			}

			data, err := r.Marshal()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
