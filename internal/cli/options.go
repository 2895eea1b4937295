package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coral-mesh/dtypes/internal/cli/output"
	"github.com/coral-mesh/dtypes/internal/config"
	"github.com/coral-mesh/dtypes/internal/logging"
)

// globalOptions holds the persistent flags and the state derived from them.
type globalOptions struct {
	configPath string
	logLevel   string
	format     string

	cfg    *config.Config
	logger zerolog.Logger
}

func (o *globalOptions) addFlags(cmd *cobra.Command, fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Config file (default ~/.dtypes/config.yaml)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	output.AddFormatFlag(cmd, fs, &o.format, output.FormatTable)
}

// setup loads the configuration and builds the logger. Flags that were set
// explicitly override the config file and environment.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()

	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = loader.LoadFile(o.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if err := output.ValidateFormat(cfg.Output.Format); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

func (o *globalOptions) outputFormat() output.Format {
	return output.Format(o.cfg.Output.Format)
}
