package batch

import (
	"fmt"
	"time"

	"github.com/alecthomas/units"
	"github.com/kballard/go-shellquote"
	"github.com/ohsu-comp-bio/simbatch/util"
)

// Job is a set of values which fill one of the bash templates.
type Job interface {
	// Kind returns the template kind this job fills.
	Kind() Kind
	// JobName returns the job name, used for the script file name.
	JobName() string
	// Args returns the template arguments in placeholder order.
	Args() []interface{}
}

// MPIDirectJob runs a command directly with mpiexec, without a scheduler.
type MPIDirectJob struct {
	Name     string
	Preamble string
	WorkDir  string
	Command  string
}

// NewMPIDirectJob returns an MPIDirectJob with a generated name.
func NewMPIDirectJob() *MPIDirectJob {
	return &MPIDirectJob{Name: util.GenJobName()}
}

// Kind implements Job.
func (j *MPIDirectJob) Kind() Kind { return MPIDirect }

// JobName implements Job.
func (j *MPIDirectJob) JobName() string { return j.Name }

// Args implements Job.
func (j *MPIDirectJob) Args() []interface{} {
	return []interface{}{j.Preamble, j.WorkDir, j.Command}
}

// SlurmJob describes a job submitted with sbatch.
type SlurmJob struct {
	Name         string
	Account      string
	Walltime     string
	Nodes        int
	TasksPerNode int
	// Log is the base name of both the stdout (.run) and stderr (.err) files.
	Log string
	// StdoutBase and StderrBase override Log for one stream.
	StdoutBase string
	StderrBase string
	Email      string
	PreRun     string
	Modules    string
	WorkDir    string
	Command    string
}

// NewSlurmJob returns a SlurmJob with a generated name, one node and one
// task per node.
func NewSlurmJob() *SlurmJob {
	return &SlurmJob{
		Name:         util.GenJobName(),
		Nodes:        1,
		TasksPerNode: 1,
	}
}

// Kind implements Job.
func (j *SlurmJob) Kind() Kind { return HPCSlurm }

// JobName implements Job.
func (j *SlurmJob) JobName() string { return j.Name }

// Args implements Job.
func (j *SlurmJob) Args() []interface{} {
	return []interface{}{
		j.Name,
		j.Account,
		j.Walltime,
		j.Nodes,
		j.TasksPerNode,
		logBase(j.StdoutBase, j.Log, j.Name),
		logBase(j.StderrBase, j.Log, j.Name),
		j.Email,
		j.PreRun,
		j.Modules,
		j.WorkDir,
		j.Command,
	}
}

// TorqueJob describes a job submitted with qsub.
type TorqueJob struct {
	Name     string
	Walltime string
	Queue    string
	// Resources is the raw "-l" resource list, e.g. "nodes=1:ppn=16".
	// See TorqueResources for building one.
	Resources  string
	Log        string
	StdoutBase string
	StderrBase string
	PreRun     string
	Command    string
}

// NewTorqueJob returns a TorqueJob with a generated name.
func NewTorqueJob() *TorqueJob {
	return &TorqueJob{Name: util.GenJobName()}
}

// Kind implements Job.
func (j *TorqueJob) Kind() Kind { return HPCTorque }

// JobName implements Job.
func (j *TorqueJob) JobName() string { return j.Name }

// Args implements Job.
func (j *TorqueJob) Args() []interface{} {
	return []interface{}{
		j.Name,
		j.Walltime,
		j.Queue,
		j.Resources,
		logBase(j.StdoutBase, j.Log, j.Name),
		logBase(j.StderrBase, j.Log, j.Name),
		j.PreRun,
		j.Command,
	}
}

func logBase(override, log, name string) string {
	switch {
	case override != "":
		return override
	case log != "":
		return log
	}
	return name
}

// TorqueResources builds a Torque resource list.
type TorqueResources struct {
	Nodes int
	PPN   int
	// Mem is a memory size such as "4GB" or "512MiB". Empty means unset.
	Mem string
}

// Spec renders the resource list, e.g. "nodes=2:ppn=16,mem=4gb".
func (r TorqueResources) Spec() (string, error) {
	nodes := r.Nodes
	if nodes < 1 {
		nodes = 1
	}
	s := fmt.Sprintf("nodes=%d", nodes)
	if r.PPN > 0 {
		s += fmt.Sprintf(":ppn=%d", r.PPN)
	}
	if r.Mem == "" {
		return s, nil
	}
	mem, err := units.ParseBase2Bytes(r.Mem)
	if err != nil {
		return "", fmt.Errorf("parsing memory %q: %w", r.Mem, err)
	}
	if mem <= 0 {
		return "", fmt.Errorf("memory must be positive, got %q", r.Mem)
	}
	return s + ",mem=" + torqueSize(mem), nil
}

// torqueSize renders a size in the largest unit which divides it exactly.
// Torque units are binary.
func torqueSize(b units.Base2Bytes) string {
	switch {
	case b%units.Tebibyte == 0:
		return fmt.Sprintf("%dtb", int64(b/units.Tebibyte))
	case b%units.Gibibyte == 0:
		return fmt.Sprintf("%dgb", int64(b/units.Gibibyte))
	case b%units.Mebibyte == 0:
		return fmt.Sprintf("%dmb", int64(b/units.Mebibyte))
	case b%units.Kibibyte == 0:
		return fmt.Sprintf("%dkb", int64(b/units.Kibibyte))
	}
	return fmt.Sprintf("%db", int64(b))
}

// ShellCommand joins argv into a single shell-quoted command line.
func ShellCommand(argv ...string) string {
	return shellquote.Join(argv...)
}

// Walltime formats a duration as HH:MM:SS, rounded to the second.
// Hours are not wrapped into days.
func Walltime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
