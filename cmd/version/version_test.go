package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ohsu-comp-bio/simbatch/logger"
	"github.com/ohsu-comp-bio/simbatch/version"
)

func TestVersionCommand(t *testing.T) {
	version.Version = "1.2.3"
	defer func() { version.Version = "unknown" }()

	var b bytes.Buffer
	Cmd.SetOut(&b)
	Cmd.SetArgs([]string{})
	if err := Cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(b.String(), "version: 1.2.3\n") {
		t.Fatal("unexpected output", b.String())
	}
}

func TestLog(t *testing.T) {
	var b bytes.Buffer
	conf := logger.DefaultConfig()
	conf.Formatter = "json"
	l := logger.NewLogger("version", conf)
	l.SetOutput(&b)

	Log(l)
	if !strings.Contains(b.String(), `"Version":"unknown"`) {
		t.Fatal("unexpected log", b.String())
	}
}
