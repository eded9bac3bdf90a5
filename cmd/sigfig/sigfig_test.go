package sigfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ohsu-comp-bio/simbatch/cmd/util"
	"github.com/ohsu-comp-bio/simbatch/config"
	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/ohsu-comp-bio/simbatch/sigfig"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Discard()
}

func execute(stdin string, args ...string) (string, error) {
	var b bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&b)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return b.String(), err
}

func TestSigfigCommand(t *testing.T) {
	out, err := execute("", "--si", "32433", "1234567890", "abc")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "32.433k\n1.2346b\nabc\n", out)

	out, err = execute("", "--sep", "-n", "3", "1234567")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1,230,000\n", out)

	out, err = execute("", "--no-rounding", "42", "0.1")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "42\n0.1\n", out)
}

func TestSigfigCommandStdin(t *testing.T) {
	out, err := execute("23432.23\n 2.5 nan\n", "--keepints", "--sigfigs", "3")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "23432\n2.50\nnan\n", out)
}

func withStdin(t *testing.T, f *os.File) {
	orig := os.Stdin
	os.Stdin = f
	t.Cleanup(func() {
		os.Stdin = orig
		f.Close()
	})
}

func executeOnStdin(args ...string) (string, error) {
	var b bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&b)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return b.String(), err
}

func TestSigfigCommandTerminalStdin(t *testing.T) {
	// A character device is not piped input; nothing is read.
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	withStdin(t, devnull)

	out, err := executeOnStdin("--si")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "", out)
}

func TestSigfigCommandPipedStdin(t *testing.T) {
	p := filepath.Join(t.TempDir(), "values.txt")
	if err := os.WriteFile(p, []byte("32433 1234567890\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	withStdin(t, f)

	out, err := executeOnStdin("--si")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "32.433k\n1.2346b\n", out)
}

func TestSigfigFlagsOverrideConfigFile(t *testing.T) {
	fileConf := config.DefaultConfig()
	fileConf.Sigfig.Sigfigs = 3
	fileConf.Sigfig.SI = true
	tmp, cleanup := util.TempConfigFile(fileConf, "sigfig.yaml")
	defer cleanup()

	out, err := execute("", "--config", tmp, "32433")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "32.4k\n", out)

	// Zero and false are explicit values, not unset flags.
	out, err = execute("", "--config", tmp, "--sigfigs", "0", "2.5")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, " 0\n", out)

	out, err = execute("", "--config", tmp, "--si=false", "32433")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "32400\n", out)
}

func TestOptions(t *testing.T) {
	o := Options(config.Sigfig{Sigfigs: 3, NoRounding: true, SI: true})
	assert.Equal(t, sigfig.Options{Sigfigs: sigfig.NoRounding, SI: true}, o)

	o = Options(config.DefaultConfig().Sigfig)
	assert.Equal(t, sigfig.DefaultOptions(), o)
}
