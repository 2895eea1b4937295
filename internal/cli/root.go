// Package cli implements the dtypes command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/dtypes/internal/cli/output"
	"github.com/coral-mesh/dtypes/pkg/version"
)

// NewRootCmd builds the dtypes command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "dtypes",
		Short: "dtypes - inspect D language types in DWARF debug info",
		Long: `Resolve base types and typedefs from the DWARF debug info of a compiled
D program, the way a debugger's type system sees them.

Examples:
  dtypes resolve ./app --name size_t
  dtypes dump ./app --filter 'kind == "real"'
  dtypes dump ./app --save
  dtypes kinds --target aarch64-unknown-linux-gnu`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	opts.addFlags(rootCmd, rootCmd.PersistentFlags())

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newKindsCmd(opts))
	rootCmd.AddCommand(newCatalogCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if opts.outputFormat() != output.FormatTable {
				return output.Write(opts.outputFormat(), []version.Info{info}, cmd.OutOrStdout())
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, info.Short())
			_, _ = fmt.Fprintf(w, "Build date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(w, "Platform:   %s\n", info.Platform)
			return nil
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
