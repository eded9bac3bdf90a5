package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/ohsu-comp-bio/simbatch/logger"
)

func init() {
	logger.Discard()
}

func TestCreateFolder(t *testing.T) {
	p := filepath.Join(t.TempDir(), "batch_data")

	if err := CreateFolder(p); err != nil {
		t.Fatal("unexpected error", err)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("expected a directory")
	}
}

func TestCreateFolderIdempotent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "batch_data")

	for i := 0; i < 2; i++ {
		if err := CreateFolder(p); err != nil {
			t.Fatal("unexpected error on call", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatal("unexpected entries", entries)
	}
}

func TestCreateFolderExistingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(p, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CreateFolder(p); err != nil {
		t.Fatal("unexpected error", err)
	}
}

func TestCreateFolderMissingParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "child")

	err := CreateFolder(p)
	if err == nil {
		t.Fatal("expected error")
	}

	var derr *DirectoryCreationError
	if !errors.As(err, &derr) {
		t.Fatalf("unexpected error type %T", err)
	}
	if derr.Path != p {
		t.Fatal("unexpected path", derr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected wrapped not-exist error", err)
	}
	if _, err := os.Stat(filepath.Dir(p)); !os.IsNotExist(err) {
		t.Fatal("parent directory should not be created")
	}
}

func TestEnsureFolders(t *testing.T) {
	tmp := t.TempDir()
	good := filepath.Join(tmp, "a")
	bad1 := filepath.Join(tmp, "x", "y")
	bad2 := filepath.Join(tmp, "z", "w")

	err := EnsureFolders(good, bad1, bad2)
	if err == nil {
		t.Fatal("expected error")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("unexpected error type %T", err)
	}
	if len(merr.Errors) != 2 {
		t.Fatal("expected two errors, got", merr.Errors)
	}
	if _, err := os.Stat(good); err != nil {
		t.Fatal("expected good folder to be created", err)
	}

	if err := EnsureFolders(good); err != nil {
		t.Fatal("unexpected error", err)
	}
}
