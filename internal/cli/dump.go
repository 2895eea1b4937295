package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/dtypes/internal/catalog"
	"github.com/coral-mesh/dtypes/internal/cli/output"
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	cerrors "github.com/coral-mesh/dtypes/internal/errors"
)

type dumpOptions struct {
	filter  string
	triple  string
	modules []string
	save    bool
	force   bool
}

func newDumpCmd(g *globalOptions) *cobra.Command {
	opts := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump <binary>",
		Short: "Resolve every type in a binary",
		Long: `Resolve every base type and typedef in the binary's debug info.

The --filter flag takes a CEL expression over the columns: offset, name,
byte_size, bit_size, kind, format, encoding, basic_type, state,
encoding_offset, encoding_kind, decl_file, decl_line.

Examples:
  dtypes dump ./app
  dtypes dump ./app --filter 'state == "unresolved"'
  dtypes dump ./app --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), cmd, g, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "CEL expression selecting rows")
	cmd.Flags().StringVar(&opts.triple, "target", "", "Target triple (overrides detection)")
	cmd.Flags().StringSliceVar(&opts.modules, "module", nil, "Additional binaries searched for definitions")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the resolved types to the catalog")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Save even if this binary version is already cataloged")

	return cmd
}

func runDump(ctx context.Context, cmd *cobra.Command, g *globalOptions, opts *dumpOptions, path string) error {
	var filter *catalog.Filter
	if opts.filter != "" {
		f, err := catalog.NewFilter(opts.filter)
		if err != nil {
			return err
		}
		filter = f
	}

	triple := opts.triple
	if triple == "" {
		triple = g.cfg.Target.Triple
	}

	s, err := openSession(path, opts.modules, triple, g.cfg.Resolver.MaxDepth, g.logger)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.binary.Data.Walk(func(e dwarfinfo.Entry) bool {
		if dwarfinfo.IsTypeTag(e.Tag()) {
			s.resolver.Resolve(e)
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to read debug info: %w", err)
	}

	types := s.resolver.Types()
	records := make([]catalog.Record, 0, len(types))
	for _, t := range types {
		records = append(records, catalog.NewRecord(s.resolver, t))
	}

	if opts.save {
		if err := saveRecords(ctx, cmd, g, s, records, opts.force); err != nil {
			return err
		}
	}

	rows, err := filter.Apply(records)
	if err != nil {
		return err
	}

	format := g.outputFormat()
	w := cmd.OutOrStdout()
	output.Heading(w, format, fmt.Sprintf("%s (%s): %d of %d types", path, s.target, len(rows), len(records)))
	return output.Write(format, rows, w)
}

func saveRecords(ctx context.Context, cmd *cobra.Command, g *globalOptions, s *session, records []catalog.Record, force bool) error {
	hash, err := s.binary.Hash()
	if err != nil {
		return fmt.Errorf("failed to hash binary: %w", err)
	}

	c, err := catalog.Open(g.cfg.Catalog.Path, g.logger)
	if err != nil {
		return err
	}
	defer cerrors.DeferClose(g.logger, c, "failed to close catalog")

	run, err := c.Save(ctx, s.binary.Path, hash, s.target.String(), records, force)
	if err != nil {
		return err
	}

	format := g.outputFormat()
	if run == nil {
		output.Hint(cmd.ErrOrStderr(), format, "Binary already cataloged, use --force to save again")
		return nil
	}
	output.Hint(cmd.ErrOrStderr(), format, fmt.Sprintf("Saved %d types as run %s", run.TypeCount, run.RunID))
	return nil
}
