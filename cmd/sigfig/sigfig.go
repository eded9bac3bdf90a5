// Package sigfig contains the "sigfig" command, which formats numbers with
// a fixed number of significant figures.
package sigfig

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ohsu-comp-bio/simbatch/cmd/util"
	"github.com/ohsu-comp-bio/simbatch/config"
	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/ohsu-comp-bio/simbatch/sigfig"
	"github.com/spf13/cobra"
)

// NewCommand returns the sigfig command
func NewCommand() *cobra.Command {
	var (
		configFile string
		flagConf   config.Config
	)

	cmd := &cobra.Command{
		Use:   "sigfig [values...]",
		Short: "Format numbers with significant figures.",
		Long: `Format numbers with a fixed number of significant figures.

Values are read from piped stdin when none are given. Values which are
not numbers are printed unchanged.`,
		Example: `  simbatch sigfig --si 32433 1234567890
  simbatch sigfig --sep -n 3 1234567`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf)
			if err != nil {
				return fmt.Errorf("error processing config: %v", err)
			}
			util.OverrideChangedSigfigFlags(cmd.Flags(), &conf, flagConf)
			logger.Configure(conf.Logger)

			if len(args) == 0 {
				in := cmd.InOrStdin()
				if in == os.Stdin {
					in = util.StdinPipe()
				}
				args, err = util.ReadFields(in)
				if err != nil {
					return err
				}
			}
			return Run(args, Options(conf.Sigfig), cmd.OutOrStdout())
		},
	}

	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)
	f := cmd.Flags()
	f.AddFlagSet(util.ConfigFlags(&flagConf, &configFile))
	f.AddFlagSet(util.SigfigFlags(&flagConf))

	return cmd
}

// Options converts the config into formatting options.
func Options(c config.Sigfig) sigfig.Options {
	o := sigfig.Options{
		Sigfigs:  c.Sigfigs,
		SI:       c.SI,
		Sep:      c.Sep,
		KeepInts: c.KeepInts,
	}
	if c.NoRounding {
		o.Sigfigs = sigfig.NoRounding
	}
	return o
}

// Run formats each value and prints one result per line.
func Run(values []string, o sigfig.Options, out io.Writer) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(out, sigfig.FormatValue(parse(v), o)); err != nil {
			return err
		}
	}
	return nil
}

// parse returns v as an int64 or float64 when possible, otherwise v itself.
func parse(v string) interface{} {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
