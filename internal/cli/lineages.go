package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// lineagesCommand creates the lineages command, which prints every
// redundant lineage and the member chosen to represent it.
func (c *CLI) lineagesCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "lineages [file.ped]",
		Short: "Print redundant lineages and their representatives",
		Long: `Print every chain of single-parent descent (a redundant lineage), top
ancestor first. The highlighted member is the one selected; the others are
dropped because they are related to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			popts, cols, err := opts.resolve(cmd, c.config)
			if err != nil {
				return err
			}
			table, err := io.ImportPED(args[0], cols)
			if err != nil {
				return err
			}
			sel, err := c.selectTable(ctx, table, popts)
			if err != nil {
				return err
			}

			families := popts.Families
			if len(families) == 0 {
				families = sel.Pedigree.Families()
			}
			total := 0
			for _, fam := range families {
				s, ok := sel.Families[fam]
				if !ok {
					return perrors.New(perrors.ErrCodeFamilyNotFound, "family %q not found in %s", fam, args[0])
				}
				lineages := s.Lineages()
				if len(lineages) == 0 {
					continue
				}
				total += len(lineages)

				fmt.Fprintln(stdout, StyleTitle.Render("Family "+string(fam)))
				reps := s.Representatives()
				for i, l := range lineages {
					printLineage(idStrings(l), string(reps[i]))
				}
			}

			if total == 0 {
				printInfo("No redundant lineages")
				return nil
			}
			printKeyValue("Lineages", fmt.Sprint(total))
			printKeyValue("Seed", fmt.Sprint(popts.Seed))
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

func idStrings(ids []pedigree.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
