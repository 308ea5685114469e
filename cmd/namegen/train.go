package main

import (
	"fmt"
	"io"
	"os"

	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/spf13/cobra"
)

func (c *cli) newTrainCmd() *cobra.Command {
	var (
		opts  TrainOptions
		prior float64
	)

	cmd := &cobra.Command{
		Use:   "train <name> <file>",
		Short: "Train a model on a word list and store it",
		Long: `Train reads one word per line from file, or from standard input when file
is "-", and stores the resulting model under name. An existing model with
the same name is replaced unless --blend is given. Blending keeps the stored
model's settings, so --order, --prior, --case-preserving, --vowels and
--weighted are rejected when the model already exists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			if cmd.Flags().Changed("prior") {
				opts.Prior = &prior
			}
			if opts.Blend && !cmd.Flags().Changed("engine") {
				// Blend into whatever engine is stored.
				opts.Engine = ""
			}
			if opts.Blend && !cmd.Flags().Changed("vowels") {
				opts.Vowels = ""
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
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

			info, err := trainModel(cmd.Context(), st, name, r, opts)
			if err != nil {
				return fmt.Errorf("training %q failed: %w", name, err)
			}
			c.logger.Info("Model saved", "name", info.Name, "engine", info.Engine, "uuid", info.UUID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s model trained on %d words\n", info.Name, info.Engine, info.DatasetLength)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Engine, "engine", "markov", "markov or cluster")
	flags.IntVar(&opts.Order, "order", 0, "context length, 0 for the engine default")
	flags.Float64Var(&prior, "prior", markov.DefaultPrior, "markov: weight of unseen transitions")
	flags.BoolVar(&opts.CasePreserving, "case-preserving", false, "markov: keep letter case from the training data")
	flags.StringVar(&opts.Vowels, "vowels", "latin", "cluster: vowel set, latin or english")
	flags.BoolVar(&opts.Weighted, "weighted", false, "cluster: pick successors by observed frequency")
	flags.BoolVar(&opts.Blend, "blend", false, "add the words to the stored model instead of replacing it")
	return cmd
}
