package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewLsCmd creates the `grove-browse ls` command.
func NewLsCmd(log *logrus.Logger) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "ls PATH [GROUP...]",
		Short: "List the groups, nodes and files at a position",
		Long: `List the contents of a data store position. Trailing arguments are
group names entered in order before listing, so nested positions can be
addressed directly:

  grove-browse ls ./project calc inputs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, closer, err := openSource(args[0])
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}

			trail, err := newTrail(root, log)
			if err != nil {
				return err
			}
			if showAll {
				trail.SetShowAll(true)
			}
			if err := descend(trail, args[1:]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, g := range trail.ListGroups() {
				fmt.Fprintf(out, "%s/\n", g)
			}
			for _, n := range trail.ListNodes() {
				fmt.Fprintln(out, n)
			}
			for _, f := range trail.ListFiles() {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include reserved nodes and hidden files")

	return cmd
}
