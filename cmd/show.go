package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

// NewShowCmd creates the `grove-browse show` command.
func NewShowCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PATH [GROUP...] NODE",
		Short: "Show a node's content through the content adapter",
		Long: `Select a node and print its adapted representation. Arguments between
the store path and the node name are groups entered in order:

  grove-browse show ./store.db jobs energy`,
		Args: cobra.MinimumNArgs(2),
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
			groups, node := args[1:len(args)-1], args[len(args)-1]
			if err := descend(trail, groups); err != nil {
				return err
			}

			out, err := trail.SelectNode(node)
			if err != nil {
				return fmt.Errorf("select %q: %w", node, err)
			}
			w, ok := out.(*wrap.Wrapper)
			if !ok {
				w = wrap.Resolve(out, trail.Current(), node)
			}
			return printWrapper(cmd.OutOrStdout(), w)
		},
	}
	return cmd
}

func printWrapper(out io.Writer, w *wrap.Wrapper) error {
	title := cases.Title(language.English).String(string(w.Kind))
	fmt.Fprintf(out, "%s: %s\n", title, w.RelPath)

	switch p := w.Payload.(type) {
	case *wrap.ArrayView:
		fmt.Fprintf(out, "shape: %v\n", p.Array().Shape())
		rows, err := p.Slice()
		if err != nil {
			return err
		}
		for _, row := range rows {
			for _, x := range row {
				fmt.Fprintf(out, "%v ", x)
			}
			fmt.Fprintln(out)
		}

	case *wrap.RecordView:
		meta := p.Metadata()
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%s: %v\n", k, meta[k])
		}
		data, err := p.Data()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%v\n", data)

	case *wrap.StructureView:
		scene, err := p.Render()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "camera: %s\nparticle size: %v\n", scene.Camera, scene.ParticleSize)

	case *wrap.CurveView:
		fig, err := p.Render()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "fit: %s\npoints: %d\n", p.FitType, len(fig.X))

	default:
		fmt.Fprintf(out, "%v\n", p)
	}
	return nil
}
