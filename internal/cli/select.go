package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/pipeline"
)

// selectOpts holds the command-line flags for the select command.
type selectOpts struct {
	inputOpts
	output string // annotated PED path
}

// selectCommand creates the select command, which writes the input PED back
// with the selection_status column.
func (c *CLI) selectCommand() *cobra.Command {
	var opts selectOpts

	cmd := &cobra.Command{
		Use:   "select [file.ped]",
		Short: "Select unrelated individuals and annotate the PED file",
		Long: `Select a maximal set of unrelated individuals in every family.

Founders and members with both parents registered are always selected. For
every chain of single-parent descent one member is drawn at random (see
--seed). The PED file is written back with a selection_status column:
2 for selected, 0 for not selected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSelect(cmd, args[0], &opts)
		},
	}

	opts.inputOpts.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "annotated PED file (default <results>/"+selectionFile+")")

	return cmd
}

func (c *CLI) runSelect(cmd *cobra.Command, input string, opts *selectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, cols, err := opts.resolve(cmd, c.config)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	table, err := io.ImportPED(input, cols)
	if err != nil {
		return err
	}
	prog.done("Read %d records from %s", len(table.Rows), input)

	sel, err := c.selectTable(ctx, table, popts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(c.config.Results, selectionFile)
	}
	if err := exportSelection(output, table, sel.Pedigree); err != nil {
		return err
	}

	printSuccess("Selected %d of %d individuals in %d families",
		sel.Selected, sel.Pedigree.Size(), sel.Pedigree.FamilyCount())
	if n := len(sel.Duplicates); n > 0 {
		printWarning("%d duplicate records ignored", n)
	}
	printFile(output)
	printNextStep("Draw the families", appName+" render "+input)
	return nil
}

// selectTable runs the select stage alone. It never touches the cache.
func (c *CLI) selectTable(ctx context.Context, t *io.Table, opts pipeline.Options) (*pipeline.Selection, error) {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Select(ctx, t.Records(), opts)
}
