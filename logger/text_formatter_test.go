package logger

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type job struct {
	Name  string
	Nodes int
}

func TestFormatNilPointerField(t *testing.T) {
	var nj *job

	c := DebugConfig()
	tf := &textFormatter{
		*c.TextFormat,
		jsonFormatter{conf: c.JSONFormat},
	}

	entry := logrus.WithFields(logrus.Fields{
		"ns":        "TEST",
		"nil value": nj,
	})
	if _, err := tf.Format(entry); err != nil {
		t.Fatal(err)
	}
}

func TestFormatStructField(t *testing.T) {
	c := DebugConfig()
	c.TextFormat.DisableTimestamp = true
	tf := &textFormatter{
		*c.TextFormat,
		jsonFormatter{conf: c.JSONFormat},
	}

	entry := logrus.WithFields(logrus.Fields{
		"ns":  "TEST",
		"job": job{Name: "sim", Nodes: 2},
	})
	entry.Message = "rendered"
	b, err := tf.Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, "rendered") || !strings.Contains(out, "Nodes") {
		t.Fatal("unexpected output:", out)
	}
}
