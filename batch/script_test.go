package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Discard()
}

func TestRenderSlurm(t *testing.T) {
	job := &SlurmJob{
		Name:         "v0_batch0_0",
		Account:      "csd403",
		Walltime:     "01:00:00",
		Nodes:        2,
		TasksPerNode: 24,
		Log:          "data/v0_batch0/v0_batch0_0",
		Email:        "a@b.edu",
		PreRun:       "",
		Modules:      "module load python",
		WorkDir:      "/home/sim",
		Command:      "srun nrniv -python -mpi init.py",
	}

	script, err := Render(job)
	assert.NoError(t, err)

	expected := "#!/bin/bash \n" + `#SBATCH --job-name=v0_batch0_0
#SBATCH -A csd403
#SBATCH -t 01:00:00
#SBATCH --nodes=2
#SBATCH --ntasks-per-node=24
#SBATCH -o data/v0_batch0/v0_batch0_0.run
#SBATCH -e data/v0_batch0/v0_batch0_0.err
#SBATCH --mail-user=a@b.edu
#SBATCH --mail-type=end

module load python
source ~/.bashrc
cd /home/sim
srun nrniv -python -mpi init.py
wait
        `
	assert.Equal(t, expected, script)
}

func TestRenderTorque(t *testing.T) {
	res, err := TorqueResources{Nodes: 2, PPN: 16, Mem: "4GB"}.Spec()
	assert.NoError(t, err)

	job := &TorqueJob{
		Name:       "sim",
		Walltime:   "00:30:00",
		Queue:      "batch",
		Resources:  res,
		Log:        "out/sim",
		StderrBase: "err/sim",
		PreRun:     "module load mpi",
		Command:    "mpiexec -n 32 nrniv -mpi init.py",
	}

	script, err := Render(job)
	assert.NoError(t, err)

	expected := "#!/bin/bash \n" +
		"#PBS -N sim\n" +
		"#PBS -l walltime=00:30:00\n" +
		"#PBS -q batch\n" +
		"#PBS -l nodes=2:ppn=16,mem=4gb\n" +
		"#PBS -o out/sim.run\n" +
		"#PBS -e err/sim.err\n" +
		"module load mpi\n" +
		"cd $PBS_O_WORKDIR\n" +
		"echo $PBS_O_WORKDIR\n" +
		"mpiexec -n 32 nrniv -mpi init.py\n" +
		"        "
	assert.Equal(t, expected, script)
}

func TestRenderMPIDirect(t *testing.T) {
	job := &MPIDirectJob{
		Name:     "sim",
		Preamble: "export OMP_NUM_THREADS=1",
		WorkDir:  "/work",
		Command:  ShellCommand("mpiexec", "-n", "4", "nrniv", "-python", "-mpi", "init.py", "simConfig=data/run 1.json"),
	}

	script, err := Render(job)
	assert.NoError(t, err)
	assert.Equal(t,
		"#!/bin/bash \nexport OMP_NUM_THREADS=1\ncd /work\nmpiexec -n 4 nrniv -python -mpi init.py 'simConfig=data/run 1.json'\n        ",
		script)
}

func TestLogBaseDefaultsToName(t *testing.T) {
	job := NewSlurmJob()
	args := job.Args()
	assert.Equal(t, job.Name, args[5])
	assert.Equal(t, job.Name, args[6])
	assert.Equal(t, 1, args[3])
	assert.Equal(t, 1, args[4])
}

type badJob struct{}

func (badJob) Kind() Kind          { return HPCSlurm }
func (badJob) JobName() string     { return "bad" }
func (badJob) Args() []interface{} { return []interface{}{"only one"} }

type strNodesJob struct{ SlurmJob }

func (j strNodesJob) Args() []interface{} {
	args := j.SlurmJob.Args()
	args[3] = "2"
	return args
}

type unknownJob struct{}

func (unknownJob) Kind() Kind          { return Kind("lsf") }
func (unknownJob) JobName() string     { return "x" }
func (unknownJob) Args() []interface{} { return nil }

func TestRenderErrors(t *testing.T) {
	_, err := Render(badJob{})
	assert.Error(t, err)

	_, err = Render(&strNodesJob{})
	assert.Error(t, err)

	_, err = Render(unknownJob{})
	assert.ErrorIs(t, err, ErrUnknownTemplateKind)
}

func TestScriptName(t *testing.T) {
	assert.Equal(t, "a.sbatch", ScriptName(&SlurmJob{Name: "a"}))
	assert.Equal(t, "b.pbs", ScriptName(&TorqueJob{Name: "b"}))
	assert.Equal(t, "c.sh", ScriptName(&MPIDirectJob{Name: "c"}))
	assert.Equal(t, "job.sh", ScriptName(&MPIDirectJob{}))
}

func TestWriteScript(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "batch_data")

	job := NewMPIDirectJob()
	job.WorkDir = "/work"
	job.Command = "mpiexec -n 2 nrniv init.py"

	p, err := WriteScript(folder, job)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, job.Name+".sh"), p)

	b, err := os.ReadFile(p)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "#!/bin/bash \n"))

	info, err := os.Stat(p)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm()&0755)
}

func TestWriteScriptMissingParent(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "a", "b")
	_, err := WriteScript(folder, &MPIDirectJob{Name: "x"})
	assert.Error(t, err)
}

func TestTorqueResources(t *testing.T) {
	tests := []struct {
		in       TorqueResources
		expected string
	}{
		{TorqueResources{}, "nodes=1"},
		{TorqueResources{Nodes: 4, PPN: 8}, "nodes=4:ppn=8"},
		{TorqueResources{Nodes: 1, PPN: 2, Mem: "512MiB"}, "nodes=1:ppn=2,mem=512mb"},
		{TorqueResources{Nodes: 1, Mem: "1536MB"}, "nodes=1,mem=1536mb"},
		{TorqueResources{Nodes: 1, Mem: "2TB"}, "nodes=1,mem=2tb"},
	}
	for _, tt := range tests {
		s, err := tt.in.Spec()
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, s)
	}

	_, err := TorqueResources{Mem: "lots"}.Spec()
	assert.Error(t, err)
}

func TestWalltime(t *testing.T) {
	for d, expected := range map[time.Duration]string{
		3600 * time.Second:                           "01:00:00",
		3601 * time.Second:                           "01:00:01",
		26*time.Hour + 3*time.Minute + 4*time.Second: "26:03:04",
		1500 * time.Millisecond:                      "00:00:02",
		-time.Second:                                 "00:00:00",
	} {
		assert.Equal(t, expected, Walltime(d))
	}
}
