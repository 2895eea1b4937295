package cli

import (
	"github.com/spf13/cobra"

	"github.com/coral-mesh/dtypes/internal/catalog"
	"github.com/coral-mesh/dtypes/internal/cli/output"
	cerrors "github.com/coral-mesh/dtypes/internal/errors"
)

func newCatalogCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query types saved with dump --save",
	}
	cmd.AddCommand(newCatalogListCmd(g))
	cmd.AddCommand(newCatalogRunsCmd(g))
	return cmd
}

func newCatalogListCmd(g *globalOptions) *cobra.Command {
	var (
		binaryHash string
		filterExpr string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *catalog.Filter
			if filterExpr != "" {
				f, err := catalog.NewFilter(filterExpr)
				if err != nil {
					return err
				}
				filter = f
			}

			c, err := catalog.Open(g.cfg.Catalog.Path, g.logger)
			if err != nil {
				return err
			}
			defer cerrors.DeferClose(g.logger, c, "failed to close catalog")

			records, err := c.List(cmd.Context(), binaryHash)
			if err != nil {
				return err
			}
			records, err = filter.Apply(records)
			if err != nil {
				return err
			}
			return output.Write(g.outputFormat(), records, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&binaryHash, "binary-hash", "", "Only types of the binary with this SHA-256")
	cmd.Flags().StringVar(&filterExpr, "filter", "", "CEL expression selecting rows")
	return cmd
}

func newCatalogRunsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List saved binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Open(g.cfg.Catalog.Path, g.logger)
			if err != nil {
				return err
			}
			defer cerrors.DeferClose(g.logger, c, "failed to close catalog")

			runs, err := c.Runs(cmd.Context())
			if err != nil {
				return err
			}
			return output.Write(g.outputFormat(), runs, cmd.OutOrStdout())
		},
	}
}
