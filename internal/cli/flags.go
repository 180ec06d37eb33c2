package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/pipeline"
)

// inputOpts holds the flags shared by every command that reads a PED file.
type inputOpts struct {
	seed     uint64
	columns  io.Columns
	families []string
}

func (o *inputOpts) bind(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&o.seed, "seed", pipeline.DefaultSeed, "random seed for choosing lineage representatives")
	cmd.Flags().StringSliceVar(&o.families, "family", nil, "restrict output to these families (repeatable)")
	cmd.Flags().StringVar(&o.columns.Family, "family-column", "", "family column name (default famid)")
	cmd.Flags().StringVar(&o.columns.ID, "id-column", "", "individual column name (default id)")
	cmd.Flags().StringVar(&o.columns.Father, "father-column", "", "father column name (default fid)")
	cmd.Flags().StringVar(&o.columns.Mother, "mother-column", "", "mother column name (default mid)")
	cmd.Flags().StringVar(&o.columns.Sex, "sex-column", "", "sex column name (default sex)")
	cmd.Flags().StringVar(&o.columns.Status, "status-column", "", "selection column name (default selection_status)")
}

// resolve merges the flags into the config values. Flags that were not set
// on the command line keep the config value.
func (o *inputOpts) resolve(cmd *cobra.Command, cfg *Config) (pipeline.Options, io.Columns, error) {
	opts, err := cfg.pipelineOptions()
	if err != nil {
		return opts, io.Columns{}, err
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = o.seed
	}
	for _, f := range o.families {
		opts.Families = append(opts.Families, pedigree.FamilyID(f))
	}

	cols := cfg.Columns
	for _, c := range []struct{ flag, dst *string }{
		{&o.columns.Family, &cols.Family},
		{&o.columns.ID, &cols.ID},
		{&o.columns.Father, &cols.Father},
		{&o.columns.Mother, &cols.Mother},
		{&o.columns.Sex, &cols.Sex},
		{&o.columns.Status, &cols.Status},
	} {
		if *c.flag != "" {
			*c.dst = *c.flag
		}
	}
	cols = cols.WithDefaults()
	if err := cols.Validate(); err != nil {
		return opts, cols, err
	}
	return opts, cols, nil
}

// familyFile returns the output path of one family artifact.
func familyFile(dir string, fam pedigree.FamilyID, ext string) (string, error) {
	stem := diagramPrefix + string(fam)
	if err := perrors.ValidateFileStem(stem); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidPath, err, "family %q cannot be used as a file name", fam)
	}
	return filepath.Join(dir, stem+ext), nil
}

// writeFile creates the parent directory of path and writes data.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// exportSelection writes the annotated PED file to path.
func exportSelection(path string, t *io.Table, p *pedigree.Pedigree) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return io.ExportPED(path, t, p)
}
