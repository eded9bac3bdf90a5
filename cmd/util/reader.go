package util

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// EmptyReader returns an io.Reader which is empty and immediately closed.
func EmptyReader() io.Reader {
	return io.NopCloser(bytes.NewReader(nil))
}

// StdinPipe will return stdin if it's available, otherwise it will return
// EmptyReader()
func StdinPipe() io.Reader {
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		return os.Stdin
	}
	return EmptyReader()
}

// ReadFields returns the whitespace separated fields of r.
func ReadFields(r io.Reader) ([]string, error) {
	var out []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		out = append(out, strings.Fields(s.Text())...)
	}
	return out, s.Err()
}
