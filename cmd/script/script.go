// Package script contains the "script" command, which renders a job
// script from config and flags and writes it into the output folder.
package script

import (
	"context"
	"fmt"
	"io"

	"github.com/ohsu-comp-bio/simbatch/batch"
	"github.com/ohsu-comp-bio/simbatch/cmd/util"
	"github.com/ohsu-comp-bio/simbatch/config"
	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/spf13/cobra"
)

// NewCommand returns the script command
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	Run func(ctx context.Context, conf config.Config, jobs []batch.Job, opts RunOptions) error
}

func newCommandHooks() (*cobra.Command, *hooks) {
	hooks := &hooks{
		Run: Run,
	}

	var (
		configFile string
		flagConf   config.Config
		name       string
		count      = 1
		opts       RunOptions
	)

	cmd := &cobra.Command{
		Use:   "script [kind] [flags] -- <command...>",
		Short: "Write a job script.",
		Long: `Render a job script running <command> and write it into the output folder.

The kind defaults to the configured one. A single command argument is used
verbatim, so it may contain pipes and redirects. Several arguments are
shell-quoted and joined.`,
		Example: `  simbatch script slurm --Slurm.Account hpc123 -- mpiexec -n 4 nrniv -mpi init.py
  simbatch script torque --Torque.Mem 4GB -- "python run.py > out.txt"
  simbatch script mpi --count 10 --name grid -- python run.py`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf)
			if err != nil {
				return fmt.Errorf("error processing config: %v", err)
			}
			logger.Configure(conf.Logger)

			kindArg, command, err := splitArgs(args, cmd.ArgsLenAtDash())
			if err != nil {
				return err
			}
			if kindArg == "" {
				kindArg = conf.Kind
			}
			kind, err := batch.ParseKind(kindArg)
			if err != nil {
				return err
			}
			if len(command) == 0 {
				return fmt.Errorf("no command was provided")
			}

			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			var jobs []batch.Job
			for i := 0; i < count; i++ {
				job, err := NewJob(kind, conf, command)
				if err != nil {
					return err
				}
				switch {
				case name != "" && count > 1:
					setName(job, fmt.Sprintf("%s_%d", name, i))
				case name != "":
					setName(job, name)
				}
				jobs = append(jobs, job)
			}

			opts.Out = cmd.OutOrStdout()
			return hooks.Run(cmd.Context(), conf, jobs, opts)
		},
	}

	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)
	f := cmd.Flags()
	f.AddFlagSet(util.ConfigFlags(&flagConf, &configFile))
	f.AddFlagSet(util.ScriptFlags(&flagConf))
	f.StringVar(&name, "name", name, "Job name. Defaults to a generated one")
	f.IntVar(&count, "count", count, "Number of job scripts to write")
	f.IntVar(&opts.Parallel, "parallel", 4, "Number of scripts written at once")
	f.BoolVar(&opts.DryRun, "dry-run", opts.DryRun, "Print the scripts instead of writing them")

	return cmd, hooks
}

// RunOptions controls how Run writes job scripts.
type RunOptions struct {
	// Print the scripts to Out instead of writing them.
	DryRun bool
	// Number of scripts written at once.
	Parallel int
	Out      io.Writer
}

// Run writes the job scripts into the configured output folder and prints
// their paths, one per line, in job order. Paths of scripts written before
// a failure are still printed.
func Run(ctx context.Context, conf config.Config, jobs []batch.Job, opts RunOptions) error {
	if opts.DryRun {
		for _, job := range jobs {
			s, err := batch.Render(job)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(opts.Out, s); err != nil {
				return err
			}
		}
		return nil
	}

	paths, err := batch.WriteScripts(ctx, conf.OutputFolder, jobs, opts.Parallel)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, werr := fmt.Fprintln(opts.Out, p); werr != nil {
			return werr
		}
	}
	return err
}

// splitArgs separates the optional kind from the command. Everything after
// "--" belongs to the command.
func splitArgs(args []string, dash int) (kind string, command []string, err error) {
	switch {
	case dash == 0:
		return "", args, nil
	case dash == 1:
		return args[0], args[1:], nil
	case dash > 1:
		return "", nil, fmt.Errorf("expected at most one argument before \"--\", got %d", dash)
	case len(args) > 0:
		return args[0], args[1:], nil
	}
	return "", nil, nil
}

// NewJob builds a job of the given kind running command, filled from the
// configuration defaults.
func NewJob(kind batch.Kind, conf config.Config, command []string) (batch.Job, error) {
	cmdline := command[0]
	if len(command) > 1 {
		cmdline = batch.ShellCommand(command...)
	}

	switch kind {
	case batch.MPIDirect:
		j := batch.NewMPIDirectJob()
		j.Preamble = conf.MPIDirect.Preamble
		j.WorkDir = conf.MPIDirect.WorkDir
		j.Command = cmdline
		return j, nil

	case batch.HPCSlurm:
		s := conf.Slurm
		j := batch.NewSlurmJob()
		j.Account = s.Account
		j.Walltime = batch.Walltime(s.Walltime.Std())
		if s.Nodes > 0 {
			j.Nodes = s.Nodes
		}
		if s.TasksPerNode > 0 {
			j.TasksPerNode = s.TasksPerNode
		}
		j.Log = s.Log
		j.Email = s.Email
		j.PreRun = s.PreRun
		j.Modules = s.Modules
		j.WorkDir = s.WorkDir
		j.Command = cmdline
		return j, nil

	case batch.HPCTorque:
		t := conf.Torque
		res, err := batch.TorqueResources{Nodes: t.Nodes, PPN: t.PPN, Mem: t.Mem}.Spec()
		if err != nil {
			return nil, err
		}
		j := batch.NewTorqueJob()
		j.Walltime = batch.Walltime(t.Walltime.Std())
		j.Queue = t.Queue
		j.Resources = res
		j.Log = t.Log
		j.PreRun = t.PreRun
		j.Command = cmdline
		return j, nil
	}
	return nil, &batch.UnknownTemplateKindError{Kind: string(kind)}
}

func setName(job batch.Job, name string) {
	switch j := job.(type) {
	case *batch.MPIDirectJob:
		j.Name = name
	case *batch.SlurmJob:
		j.Name = name
	case *batch.TorqueJob:
		j.Name = name
	}
}
