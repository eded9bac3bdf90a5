// Package batch generates job submission scripts for batch simulations.
//
// Templates use printf-style verbs and are filled positionally, so their
// text and verb order are part of the contract with existing submission
// tooling and must not change.
package batch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a job scheduler template.
type Kind string

// Template kinds.
const (
	MPIDirect Kind = "mpi_direct"
	HPCSlurm  Kind = "hpc_slurm"
	HPCTorque Kind = "hpc_torque"
)

// Kinds lists all known template kinds.
var Kinds = []Kind{MPIDirect, HPCSlurm, HPCTorque}

// ErrUnknownTemplateKind is matched by errors.Is for any *UnknownTemplateKindError.
var ErrUnknownTemplateKind = errors.New("unknown template kind")

// UnknownTemplateKindError is returned when a template kind is not recognized.
type UnknownTemplateKindError struct {
	Kind string
}

func (e *UnknownTemplateKindError) Error() string {
	return fmt.Sprintf("unknown template kind %q, expected one of %s", e.Kind, kindList())
}

// Is reports whether target is ErrUnknownTemplateKind.
func (e *UnknownTemplateKindError) Is(target error) bool {
	return target == ErrUnknownTemplateKind
}

func kindList() string {
	s := make([]string, len(Kinds))
	for i, k := range Kinds {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}

var aliases = map[string]Kind{
	"mpi_direct": MPIDirect,
	"mpi":        MPIDirect,
	"hpc_slurm":  HPCSlurm,
	"slurm":      HPCSlurm,
	"hpc_torque": HPCTorque,
	"torque":     HPCTorque,
	"pbs":        HPCTorque,
}

// ParseKind parses a template kind. Matching is case-insensitive and
// accepts the short aliases "mpi", "slurm", "torque" and "pbs".
func ParseKind(s string) (Kind, error) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &UnknownTemplateKindError{Kind: s}
	}
	return k, nil
}

// The shebang lines carry a trailing space and every template ends with an
// indented empty line. Both are kept as-is.

// Verbs: preamble, work dir, run command.
var mpiDirectTemplate = "#!/bin/bash \n" + `%s
cd %s
%s
` + "        "

// Verbs: job name, account, walltime, nodes, tasks per node, stdout base,
// stderr base, mail user, pre-run block, module setup block, work dir,
// run command.
var slurmTemplate = "#!/bin/bash \n" + `#SBATCH --job-name=%s
#SBATCH -A %s
#SBATCH -t %s
#SBATCH --nodes=%d
#SBATCH --ntasks-per-node=%d
#SBATCH -o %s.run
#SBATCH -e %s.err
#SBATCH --mail-user=%s
#SBATCH --mail-type=end
%s
%s
source ~/.bashrc
cd %s
%s
wait
` + "        "

// Verbs: job name, walltime, queue, resource list, stdout base, stderr base,
// pre-run block, run command.
var torqueTemplate = "#!/bin/bash \n" + `#PBS -N %s
#PBS -l walltime=%s
#PBS -q %s
#PBS -l %s
#PBS -o %s.run
#PBS -e %s.err
%s
cd $PBS_O_WORKDIR
echo $PBS_O_WORKDIR
%s
` + "        "

// BashTemplate returns the bash submission template for the given kind.
func BashTemplate(kind Kind) (string, error) {
	switch kind {
	case MPIDirect:
		return mpiDirectTemplate, nil
	case HPCSlurm:
		return slurmTemplate, nil
	case HPCTorque:
		return torqueTemplate, nil
	}
	return "", &UnknownTemplateKindError{Kind: string(kind)}
}

var verbRe = regexp.MustCompile(`%[sd]`)

// Placeholders returns the printf verbs of a template in the order they must
// be filled, e.g. ["%s", "%d"].
func Placeholders(kind Kind) ([]string, error) {
	tpl, err := BashTemplate(kind)
	if err != nil {
		return nil, err
	}
	return verbRe.FindAllString(tpl, -1), nil
}
