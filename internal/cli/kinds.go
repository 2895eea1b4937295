package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/dtypes/internal/cli/output"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/internal/typekind"
)

type kindRow struct {
	Kind      string `json:"kind" header:"KIND"`
	Name      string `json:"name" header:"NAME"`
	Builtin   bool   `json:"builtin" header:"BUILTIN"`
	Format    string `json:"format" header:"FORMAT"`
	Encoding  string `json:"encoding" header:"ENCODING"`
	Elements  uint64 `json:"elements" header:"ELEMENTS"`
	BasicType string `json:"basic_type" header:"BASIC_TYPE"`
	Bits      string `json:"bits" header:"BITS"`
}

func newKindsCmd(g *globalOptions) *cobra.Command {
	var triple string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the D type kinds and their metadata on a target",
		Long: `List every type kind with its display format, encoding, basic type
and bit width on the target. Widths of real, creal, pointers and slices
depend on the target.

Examples:
  dtypes kinds
  dtypes kinds --target x86_64-pc-windows-msvc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := kindsTarget(triple, g.cfg.Target.Triple)
			if err != nil {
				return err
			}

			format := g.outputFormat()
			output.Heading(cmd.OutOrStdout(), format, fmt.Sprintf("Kinds on %s (real is %d bits)", t, typekind.RealBitSize(t)))
			return output.Write(format, kindRows(t), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&triple, "target", "", "Target triple (default: config, then host)")
	return cmd
}

func kindsTarget(flag, configured string) (target.Target, error) {
	switch {
	case flag != "":
		return target.ParseTriple(flag)
	case configured != "":
		return target.ParseTriple(configured)
	}
	return target.Host(), nil
}

func kindRows(t target.Target) []kindRow {
	kinds := typekind.Kinds()
	rows := make([]kindRow, 0, len(kinds))
	for _, k := range kinds {
		enc, elems := k.Encoding()
		bits := "-"
		if n, ok := k.BitSize(t); ok {
			bits = fmt.Sprint(n)
		}
		rows = append(rows, kindRow{
			Kind:      k.String(),
			Name:      k.CanonicalName(),
			Builtin:   k.IsBuiltin(),
			Format:    k.Format().String(),
			Encoding:  enc.String(),
			Elements:  elems,
			BasicType: k.BasicType().String(),
			Bits:      bits,
		})
	}
	return rows
}
