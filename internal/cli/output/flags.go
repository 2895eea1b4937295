package output

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AddFormatFlag adds a --format/-o flag to fs with shell completion on cmd.
func AddFormatFlag(cmd *cobra.Command, fs *pflag.FlagSet, formatVar *string, defaultFormat Format) {
	fs.StringVarP(formatVar, "format", "o", string(defaultFormat),
		fmt.Sprintf("Output format (%s)", joinFormats()))

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if format == string(f) {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q, must be one of: %s", format, joinFormats())
}
