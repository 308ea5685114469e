package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/CTAG07/namegen/pkg/cluster"
	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/CTAG07/namegen/pkg/store"
	"github.com/spf13/cobra"
)

func (c *cli) newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage stored models",
	}
	cmd.AddCommand(
		c.newModelsListCmd(),
		c.newModelsRemoveCmd(),
		c.newModelsExportCmd(),
		c.newModelsImportCmd(),
		c.newModelsStatsCmd(),
		c.newModelsPruneCmd(),
	)
	return cmd
}

func (c *cli) newModelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored models",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			return printInfos(cmd.OutOrStdout(), infos)
		},
	}
}

func printInfos(w io.Writer, infos []store.Info) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENGINE\tWORDS\tCREATED\tUUID")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			info.Name, info.Engine, info.DatasetLength, info.CreatedAt.Local().Format(time.DateTime), info.UUID)
	}
	return tw.Flush()
}

func (c *cli) newModelsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>...",
		Aliases: []string{"rm"},
		Short:   "Remove stored models",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			for _, name := range args {
				if err = st.Remove(cmd.Context(), name); err != nil {
					return fmt.Errorf("failed to remove %q: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
			}
			return nil
		},
	}
}

func (c *cli) newModelsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Export a model as JSON",
		Long:  "Export writes the model stored under name to file, or to standard output when no file is given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			name := args[0]
			if len(args) == 1 {
				return st.Export(cmd.Context(), name, cmd.OutOrStdout())
			}
			rec, err := st.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			if err = store.WriteFile(args[1], rec); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}
			c.logger.Info("Model exported", "name", name, "path", args[1])
			return nil
		},
	}
}

func (c *cli) newModelsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a model exported as JSON",
		Long:  `Import stores a model exported with "models export". Use "-" to read standard input.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			info, err := st.Import(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %s model\n", info.Name, info.Engine)
			return nil
		},
	}
}

func (c *cli) newModelsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <name>",
		Short: "Print statistics about a stored model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			m, err := st.LoadGenerator(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var stats any
			switch g := m.(type) {
			case *markov.Generator:
				stats = g.Stats()
			case *cluster.Generator:
				stats = g.Stats()
			default:
				return store.ErrUnsupportedModel
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(stats)
		},
	}
}

func (c *cli) newModelsPruneCmd() *cobra.Command {
	var minFreq int

	cmd := &cobra.Command{
		Use:   "prune <name>",
		Short: "Drop rare transitions from a markov model",
		Long: `Prune removes every transition of a markov model seen at most --min-freq
times after a context longer than one character, then stores the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			name := args[0]
			m, err := st.LoadGenerator(cmd.Context(), name)
			if err != nil {
				return err
			}
			g, ok := m.(*markov.Generator)
			if !ok {
				return fmt.Errorf("%w: only markov models can be pruned", errInvalidArgument)
			}
			removed := g.Prune(minFreq)
			if _, err = st.Save(cmd.Context(), name, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: pruned %d transitions\n", name, removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&minFreq, "min-freq", 1, "highest count that is still pruned")
	return cmd
}
