package main

import (
	"fmt"

	"github.com/CTAG07/namegen/pkg/templating"
	"github.com/CTAG07/namegen/pkg/textgen"
	"github.com/spf13/cobra"
)

func (c *cli) newRenderCmd() *cobra.Command {
	var (
		count  int
		seed   uint64
		inline bool
	)

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a name template",
		Long: `Render executes a template from the configured template directory with
every stored model available to gen, genWith and full. Without an argument
a random template is chosen. With --inline the argument is the template
text itself, for example:

  namegen render --inline '{{title (gen "given")}} {{title (gen "family")}}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("%w: count must be positive", errInvalidArgument)
			}

			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			tm, err := templating.NewTemplateManager(c.logger, st, c.config.Templates, c.config.Server.TemplateDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				tm.SetSource(textgen.NewSource(seed))
			}

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case inline:
				return fmt.Errorf("%w: --inline needs the template text", errInvalidArgument)
			default:
				if name = tm.GetRandomTemplate(); name == "" {
					return fmt.Errorf("no templates found in %s", tm.GetTemplateDir())
				}
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				if inline {
					err = tm.ExecuteTemplateString(out, name, nil)
				} else {
					err = tm.Execute(out, name, nil)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&count, "count", "n", 1, "number of renders")
	flags.Uint64Var(&seed, "seed", 0, "seed for template helpers such as pick and chance")
	flags.BoolVar(&inline, "inline", false, "treat the argument as template text instead of a file name")
	return cmd
}
