package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/ohsu-comp-bio/simbatch/util/fsutil"
)

var log = logger.NewSubLogger("batch")

// Render fills the job's template with its arguments.
func Render(job Job) (string, error) {
	tpl, err := BashTemplate(job.Kind())
	if err != nil {
		return "", err
	}

	verbs := verbRe.FindAllString(tpl, -1)
	args := job.Args()
	if len(args) != len(verbs) {
		return "", fmt.Errorf("%s template takes %d arguments, got %d", job.Kind(), len(verbs), len(args))
	}
	for i, v := range verbs {
		if v != "%d" {
			continue
		}
		switch args[i].(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		default:
			return "", fmt.Errorf("%s template argument %d must be an integer, got %T", job.Kind(), i+1, args[i])
		}
	}
	return fmt.Sprintf(tpl, args...), nil
}

var extensions = map[Kind]string{
	MPIDirect: ".sh",
	HPCSlurm:  ".sbatch",
	HPCTorque: ".pbs",
}

// ScriptName returns the file name a job script is written to,
// e.g. "sim_0.sbatch".
func ScriptName(job Job) string {
	name := job.JobName()
	if name == "" {
		name = "job"
	}
	return name + extensions[job.Kind()]
}

// WriteScript renders the job and writes the script into folder, creating
// the folder if needed. It returns the path of the written script.
func WriteScript(folder string, job Job) (string, error) {
	script, err := Render(job)
	if err != nil {
		return "", err
	}

	// Best-effort; a failure here surfaces from WriteFile below.
	fsutil.CreateFolder(folder)

	p := filepath.Join(folder, ScriptName(job))
	if err := os.WriteFile(p, []byte(script), 0755); err != nil {
		return "", fmt.Errorf("writing %s script: %w", job.Kind(), err)
	}
	log.Debug("Wrote job script", "path", p, "kind", job.Kind())
	return p, nil
}
