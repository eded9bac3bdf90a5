// Package config contains simbatch configuration.
package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ohsu-comp-bio/simbatch/batch"
	"github.com/ohsu-comp-bio/simbatch/logger"
)

// Config describes configuration for simbatch.
type Config struct {
	Logger logger.LoggerConfig
	// Folder which job scripts are written into.
	OutputFolder string
	// Default template kind, used when a command is not given one.
	Kind      string
	MPIDirect MPIDirect
	Slurm     Slurm
	Torque    Torque
	Sigfig    Sigfig
}

// MPIDirect describes defaults for jobs run directly with mpiexec.
type MPIDirect struct {
	// Commands run before changing into WorkDir, e.g. "source ~/.bashrc".
	Preamble string
	WorkDir  string
}

// Slurm describes defaults for jobs submitted with sbatch.
type Slurm struct {
	Account      string
	Walltime     Duration
	Nodes        int
	TasksPerNode int
	// Base name of the .run/.err log files. Defaults to the job name.
	Log     string
	Email   string
	PreRun  string
	Modules string
	WorkDir string
}

// Torque describes defaults for jobs submitted with qsub.
type Torque struct {
	Queue    string
	Walltime Duration
	Nodes    int
	PPN      int
	// Memory per job, e.g. "4GB".
	Mem    string
	Log    string
	PreRun string
}

// Sigfig describes default number formatting.
type Sigfig struct {
	Sigfigs    int
	NoRounding bool
	SI         bool
	Sep        bool
	KeepInts   bool
}

// DefaultConfig returns configuration with simple defaults.
func DefaultConfig() Config {
	cwd, _ := os.Getwd()

	return Config{
		Logger:       logger.DefaultConfig(),
		OutputFolder: path.Join(cwd, "simbatch-scripts"),
		Kind:         string(batch.HPCSlurm),
		MPIDirect: MPIDirect{
			WorkDir: cwd,
		},
		Slurm: Slurm{
			Walltime:     Duration(time.Hour),
			Nodes:        1,
			TasksPerNode: 1,
			WorkDir:      cwd,
		},
		Torque: Torque{
			Queue:    "batch",
			Walltime: Duration(time.Hour),
			Nodes:    1,
			PPN:      1,
		},
		Sigfig: Sigfig{
			Sigfigs: 5,
		},
	}
}

// Validate checks the configuration, reporting every problem found.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Kind != "" {
		if _, err := batch.ParseKind(c.Kind); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.Slurm.Nodes < 0 || c.Slurm.TasksPerNode < 0 {
		result = multierror.Append(result, fmt.Errorf("Slurm: Nodes and TasksPerNode must not be negative"))
	}
	if c.Slurm.Walltime < 0 || c.Torque.Walltime < 0 {
		result = multierror.Append(result, fmt.Errorf("Walltime must not be negative"))
	}
	if c.Torque.Nodes < 0 || c.Torque.PPN < 0 {
		result = multierror.Append(result, fmt.Errorf("Torque: Nodes and PPN must not be negative"))
	}
	if c.Torque.Mem != "" {
		r := batch.TorqueResources{Nodes: c.Torque.Nodes, PPN: c.Torque.PPN, Mem: c.Torque.Mem}
		if _, err := r.Spec(); err != nil {
			result = multierror.Append(result, fmt.Errorf("Torque: %w", err))
		}
	}
	return result.ErrorOrNil()
}
