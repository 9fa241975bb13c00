package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/chemevo/config"
)

// version is set at link time.
var version = "dev"

type rootOptions struct {
	envFiles []string
}

// loadRun reads a run file and applies the environment overrides to it.
func (o *rootOptions) loadRun(path string) (*config.Run, error) {
	r, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	env, err := config.Environment(o.envFiles...)
	if err != nil {
		return nil, err
	}

	err = r.ApplyEnv(env)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chemevo",
		Short: "Chemevo evolves the elements of galaxies zone by zone.",
		Long: `Chemevo evolves the gas, the stars and the element abundances ` +
			`of one or more zones of a galaxy. Runs are described by YAML ` +
			`run files and written to SQLite databases.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env",
		[]string{".env"}, "dotenv files with overrides, missing files are skipped")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("chemevo " + version)
		},
	}
}
