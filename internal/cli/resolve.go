package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/dtypes/internal/catalog"
	"github.com/coral-mesh/dtypes/internal/cli/output"
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/resolver"
)

type resolveOptions struct {
	name    string
	offset  string
	triple  string
	modules []string
}

func newResolveCmd(g *globalOptions) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <binary>",
		Short: "Resolve a type by name or entry offset",
		Long: `Resolve one type from the binary's debug info and show its layout.
Typedefs are followed to the base type they name.

Examples:
  dtypes resolve ./app --name size_t
  dtypes resolve ./app --offset 0x2d
  dtypes resolve ./app --name Handle --module ./libimpl.so`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Type name to resolve")
	cmd.Flags().StringVar(&opts.offset, "offset", "", "Entry offset to resolve (decimal or 0x hex)")
	cmd.Flags().StringVar(&opts.triple, "target", "", "Target triple (overrides detection)")
	cmd.Flags().StringSliceVar(&opts.modules, "module", nil, "Additional binaries searched for definitions")
	cmd.MarkFlagsOneRequired("name", "offset")
	cmd.MarkFlagsMutuallyExclusive("name", "offset")

	return cmd
}

// resolvedRow is a record plus its typedef chain.
type resolvedRow struct {
	catalog.Record
	Chain string `json:"chain" header:"CHAIN"`
}

func runResolve(cmd *cobra.Command, g *globalOptions, opts *resolveOptions, path string) error {
	triple := opts.triple
	if triple == "" {
		triple = g.cfg.Target.Triple
	}

	s, err := openSession(path, opts.modules, triple, g.cfg.Resolver.MaxDepth, g.logger)
	if err != nil {
		return err
	}
	defer s.Close()

	var types []*resolver.Type
	if opts.offset != "" {
		off, err := strconv.ParseUint(opts.offset, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", opts.offset, err)
		}
		if t := s.resolver.ResolveID(dwarfinfo.ID(off)); t != nil {
			types = append(types, t)
		}
	} else {
		for _, e := range s.binary.Data.LookupType(opts.name) {
			if t := s.resolver.Resolve(e); t != nil {
				types = append(types, t)
			}
		}
	}

	if len(types) == 0 {
		what := opts.name
		if what == "" {
			what = opts.offset
		}
		return fmt.Errorf("no resolvable type %s in %s", what, path)
	}

	rows := make([]resolvedRow, 0, len(types))
	for _, t := range types {
		rows = append(rows, resolvedRow{
			Record: catalog.NewRecord(s.resolver, t),
			Chain:  strings.Join(s.resolver.Chain(t), " -> "),
		})
	}

	format := g.outputFormat()
	output.Heading(cmd.OutOrStdout(), format, fmt.Sprintf("%s (%s)", path, s.target))
	return output.Write(format, rows, cmd.OutOrStdout())
}
