package template

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ohsu-comp-bio/simbatch/batch"
)

func execute(args ...string) (string, error) {
	var b bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&b)
	cmd.SetErr(&b)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return b.String(), err
}

func TestTemplateCommand(t *testing.T) {
	out, err := execute("slurm")
	if err != nil {
		t.Fatal(err)
	}
	tpl, _ := batch.BashTemplate(batch.HPCSlurm)
	if out != tpl+"\n" {
		t.Fatal("unexpected output", out)
	}
}

func TestTemplatePlaceholders(t *testing.T) {
	out, err := execute("--placeholders", "mpi_direct")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1\t%s\n2\t%s\n3\t%s\n" {
		t.Fatal("unexpected output", out)
	}
}

func TestTemplateUnknownKind(t *testing.T) {
	_, err := execute("lsf")
	if !errors.Is(err, batch.ErrUnknownTemplateKind) {
		t.Fatal("expected unknown kind error", err)
	}

	_, err = execute()
	if err == nil || !strings.Contains(err.Error(), "accepts 1 arg") {
		t.Fatal("expected argument error", err)
	}
}
