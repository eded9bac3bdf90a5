package util

import (
	"fmt"
	"strings"

	"github.com/imdario/mergo"
	"github.com/ohsu-comp-bio/simbatch/config"
	"github.com/spf13/pflag"
)

func normalize(name string) string {
	from := []string{"-", "_"}
	to := "."
	for _, sep := range from {
		name = strings.Replace(name, sep, to, -1)
	}
	return strings.ToLower(name)
}

// NormalizeFlags allows for flags to be case and separator insensitive.
// Use it by passing it to cobra.Command.SetGlobalNormalizationFunc
func NormalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	lookup := map[string]string{"help": "help", normalize(name): name}

	f.VisitAll(func(f *pflag.Flag) {
		lookup[normalize(f.Name)] = f.Name
	})

	return pflag.NormalizedName(lookup[normalize(name)])
}

// MergeConfigFileWithFlags builds the config used by a command: defaults,
// overridden by the config file (if any), overridden by flag values.
// Flags left at their zero value do not override.
func MergeConfigFileWithFlags(file string, flagConf config.Config) (config.Config, error) {
	conf := config.DefaultConfig()
	if err := config.ParseFile(file, &conf); err != nil {
		return conf, err
	}

	// file vals <- cli val
	if err := mergo.MergeWithOverwrite(&conf, flagConf); err != nil {
		return conf, err
	}

	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("invalid config: %w", err)
	}
	return conf, nil
}

// TempConfigFile writes the configuration to a temporary file.
// Returns:
// - "path" is the path of the file.
// - "cleanup" can be called to remove the temporary file.
func TempConfigFile(c config.Config, name string) (path string, cleanup func()) {
	path, cleanup, err := config.ToYamlTempFile(c, name)
	if err != nil {
		panic(err)
	}
	return path, cleanup
}

// OverrideChangedSigfigFlags copies sigfig flags which were set on the
// command line into conf, including zero and false values which
// MergeConfigFileWithFlags skips.
func OverrideChangedSigfigFlags(f *pflag.FlagSet, conf *config.Config, flagConf config.Config) {
	if f.Changed("sigfigs") {
		conf.Sigfig.Sigfigs = flagConf.Sigfig.Sigfigs
	}
	if f.Changed("no-rounding") {
		conf.Sigfig.NoRounding = flagConf.Sigfig.NoRounding
	}
	if f.Changed("si") {
		conf.Sigfig.SI = flagConf.Sigfig.SI
	}
	if f.Changed("sep") {
		conf.Sigfig.Sep = flagConf.Sigfig.Sep
	}
	if f.Changed("keepints") {
		conf.Sigfig.KeepInts = flagConf.Sigfig.KeepInts
	}
}
