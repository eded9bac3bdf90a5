package util

import (
	"github.com/ohsu-comp-bio/simbatch/config"
	"github.com/spf13/pflag"
)

// ConfigFlags returns a new flag set for the config file and the settings
// shared by all commands.
func ConfigFlags(flagConf *config.Config, configFile *string) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(configFile, "config", "c", *configFile, "Config File")
	f.AddFlagSet(loggerFlags(flagConf))

	return f
}

// ScriptFlags returns a new flag set for configuring job scripts.
func ScriptFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.OutputFolder, "OutputFolder", flagConf.OutputFolder, "Folder to write job scripts into")
	f.AddFlagSet(mpiDirectFlags(flagConf))
	f.AddFlagSet(slurmFlags(flagConf))
	f.AddFlagSet(torqueFlags(flagConf))

	return f
}

// SigfigFlags returns a new flag set for configuring number formatting.
func SigfigFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.IntVarP(&flagConf.Sigfig.Sigfigs, "sigfigs", "n", flagConf.Sigfig.Sigfigs, "Number of significant figures")
	f.BoolVar(&flagConf.Sigfig.NoRounding, "no-rounding", flagConf.Sigfig.NoRounding, "Print values without rounding")
	f.BoolVar(&flagConf.Sigfig.SI, "si", flagConf.Sigfig.SI, "Scale values and append a suffix (k, m, b, t, e15, e18)")
	f.BoolVar(&flagConf.Sigfig.Sep, "sep", flagConf.Sigfig.Sep, "Insert thousands separators")
	f.BoolVar(&flagConf.Sigfig.KeepInts, "keepints", flagConf.Sigfig.KeepInts, "Print large values as whole numbers")

	return f
}

func loggerFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Logger.Level, "Logger.Level", flagConf.Logger.Level, "Level of logging")
	f.StringVar(&flagConf.Logger.OutputFile, "Logger.OutputFile", flagConf.Logger.OutputFile, "File path to write logs to")
	f.StringVar(&flagConf.Logger.Formatter, "Logger.Formatter", flagConf.Logger.Formatter, "Logs formatter. One of ['text', 'json']")

	return f
}

func mpiDirectFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.MPIDirect.Preamble, "MPIDirect.Preamble", flagConf.MPIDirect.Preamble, "Commands run before the job")
	f.StringVar(&flagConf.MPIDirect.WorkDir, "MPIDirect.WorkDir", flagConf.MPIDirect.WorkDir, "Working directory of the job")

	return f
}

func slurmFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Slurm.Account, "Slurm.Account", flagConf.Slurm.Account, "Account to charge")
	f.Var(&flagConf.Slurm.Walltime, "Slurm.Walltime", "Time limit, e.g. 1h30m")
	f.IntVar(&flagConf.Slurm.Nodes, "Slurm.Nodes", flagConf.Slurm.Nodes, "Number of nodes")
	f.IntVar(&flagConf.Slurm.TasksPerNode, "Slurm.TasksPerNode", flagConf.Slurm.TasksPerNode, "Number of tasks per node")
	f.StringVar(&flagConf.Slurm.Log, "Slurm.Log", flagConf.Slurm.Log, "Base name of the .run and .err log files")
	f.StringVar(&flagConf.Slurm.Email, "Slurm.Email", flagConf.Slurm.Email, "Address for job notifications")
	f.StringVar(&flagConf.Slurm.PreRun, "Slurm.PreRun", flagConf.Slurm.PreRun, "Commands run before the job")
	f.StringVar(&flagConf.Slurm.Modules, "Slurm.Modules", flagConf.Slurm.Modules, "Module load commands")
	f.StringVar(&flagConf.Slurm.WorkDir, "Slurm.WorkDir", flagConf.Slurm.WorkDir, "Working directory of the job")

	return f
}

func torqueFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Torque.Queue, "Torque.Queue", flagConf.Torque.Queue, "Queue to submit to")
	f.Var(&flagConf.Torque.Walltime, "Torque.Walltime", "Time limit, e.g. 1h30m")
	f.IntVar(&flagConf.Torque.Nodes, "Torque.Nodes", flagConf.Torque.Nodes, "Number of nodes")
	f.IntVar(&flagConf.Torque.PPN, "Torque.PPN", flagConf.Torque.PPN, "Processors per node")
	f.StringVar(&flagConf.Torque.Mem, "Torque.Mem", flagConf.Torque.Mem, "Memory, e.g. 4GB")
	f.StringVar(&flagConf.Torque.Log, "Torque.Log", flagConf.Torque.Log, "Base name of the .run and .err log files")
	f.StringVar(&flagConf.Torque.PreRun, "Torque.PreRun", flagConf.Torque.PreRun, "Commands run before the job")

	return f
}
