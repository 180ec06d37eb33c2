package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/observability"
	"github.com/matzehuels/pedtower/pkg/pipeline"
	"github.com/matzehuels/pedtower/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	inputOpts
	results     string  // output directory
	formats     string  // comma-separated formats
	detailed    bool    // add sex and selection status to labels
	scale       float64 // PNG scale factor
	concurrency int     // families processed at once
	noCache     bool    // disable the layout and artifact cache
	refresh     bool    // recompute and overwrite cached entries
}

// renderCommand creates the render command: select, then draw every family.
//
// Outputs in the results directory:
//   - pedigree_selection.ped: the annotated PED file
//   - pedigree_family_<id>.<ext>: one diagram per family and format
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file.ped]",
		Short: "Select unrelated individuals and draw every family",
		Long: `Select unrelated individuals, write the annotated PED file and draw each
family as a generation diagram.

Males are drawn as boxes, females as ellipses and unknown sex as diamonds.
Selected individuals are green, the others red. Couples meet in a point
from which their children descend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.inputOpts.bind(cmd)
	cmd.Flags().StringVarP(&opts.results, "results", "o", "", "results directory (default results)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label individuals with sex and selection status")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "families drawn at once (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached layouts and diagrams")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, cols, err := opts.resolve(cmd, c.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		if popts.Formats, err = render.ParseFormats(opts.formats); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("detailed") {
		popts.Detailed = opts.detailed
	}
	if cmd.Flags().Changed("scale") {
		popts.Scale = opts.scale
	}
	if cmd.Flags().Changed("jobs") {
		popts.Concurrency = opts.concurrency
	}
	popts.Refresh = opts.refresh
	results := opts.results
	if results == "" {
		results = c.config.Results
	}

	table, err := io.ImportPED(input, cols)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var result *pipeline.Result
	if !c.verbose && interactive() {
		spinner := newSpinner(ctx, os.Stderr, "Reading pedigree...")
		observability.SetPipelineHooks(newSpinnerHooks(spinner, len(popts.Families)))
		spinner.Start()
		result, err = runner.Execute(ctx, table.Records(), popts)
		spinner.Stop()
		observability.Reset()
	} else {
		result, err = runner.Execute(ctx, table.Records(), popts)
	}
	if err != nil {
		return err
	}
	prog.done("Rendered %d families", len(result.Families))

	return writeResults(results, table, result)
}

// writeResults writes the annotated PED file and every family artifact.
func writeResults(dir string, table *io.Table, result *pipeline.Result) error {
	selPath := filepath.Join(dir, selectionFile)
	if err := exportSelection(selPath, table, result.Selection.Pedigree); err != nil {
		return err
	}

	printSuccess("Selected %d of %d individuals in %d families",
		result.Stats.Selected, result.Stats.Individuals, result.Stats.Families)
	printFile(selPath)

	for _, fam := range result.Families {
		printFamilyStats(string(fam.Family), fam.Layout.Size(), len(fam.Layout.Generations),
			fam.CacheInfo.LayoutHit && fam.CacheInfo.RenderHit)
		if n := len(fam.Conflicts) + len(fam.Mismatches); n > 0 {
			printDetail("%d relations could not be placed on adjacent generations", n)
		}
		for _, format := range render.AllFormats {
			data, ok := fam.Artifacts[format]
			if !ok {
				continue
			}
			path, err := familyFile(dir, fam.Family, format.Ext())
			if err != nil {
				return err
			}
			if err := writeFile(path, data); err != nil {
				return err
			}
			printFile(path)
		}
	}
	return nil
}
