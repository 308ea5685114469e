package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/CTAG07/namegen/pkg/textgen"
	"github.com/spf13/cobra"
)

func (c *cli) newGenerateCmd() *cobra.Command {
	var (
		opts GenerateOptions
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate names from a stored model",
		Long: `Generate prints names from the model stored under name, one per line.

Length and affix flags override the filters saved with the model. With
--second, every name is joined to one from a second model, for example a
given name and a family name. A count of 0 prints names until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Count < 0 {
				return fmt.Errorf("%w: count must not be negative", errInvalidArgument)
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			if !cmd.Flags().Changed("separator") {
				opts.Separator = c.config.Templates.Separator
			}
			if !cmd.Flags().Changed("max-attempts") {
				opts.MaxAttempts = c.config.Templates.MaxAttempts
			}

			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			g, err := newNameGenerator(ctx, st, args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for res := range textgen.Stream(ctx, g, opts.Count) {
				if res.Err != nil {
					return res.Err
				}
				fmt.Fprintln(out, res.Text)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Count, "count", "n", 1, "number of names, 0 for unlimited")
	flags.IntVar(&opts.Filter.MinLength, "min", 0, "minimum length in characters")
	flags.IntVar(&opts.Filter.MaxLength, "max", 0, "maximum length in characters")
	flags.StringVar(&opts.Filter.StartsWith, "start", "", "required prefix")
	flags.StringVar(&opts.Filter.EndsWith, "end", "", "required suffix")
	flags.Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	flags.IntVar(&opts.MaxAttempts, "max-attempts", 0, "give up after this many rejected candidates, 0 for no limit")
	flags.StringVar(&opts.Second, "second", "", "model whose names are appended to each name")
	flags.StringVar(&opts.Separator, "separator", " ", "text between the two names when --second is set")
	return cmd
}
