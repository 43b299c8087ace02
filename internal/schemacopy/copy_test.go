package schemacopy

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ngx-env/ngxenv/internal/testutil"
)

const schema = `{"$schema": "http://json-schema.org/schema", "properties": {"project": {"type": "string"}}}`

func TestCopy(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteFile(t, src, "schematics/ng-add/schema.json", schema)

	dst, err := Copy(src, dist, "ng-add")
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if want := filepath.Join(dist, "schematics", "ng-add", "schema.json"); dst != want {
		t.Errorf("Copy() = %q, want %q", dst, want)
	}
	if got := testutil.ReadFile(t, dst); got != schema {
		t.Errorf("copied content = %q, want %q", got, schema)
	}
}

func TestCopy_overwrites(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteFile(t, src, "schematics/ng-add/schema.json", schema)
	testutil.WriteFile(t, dist, "schematics/ng-add/schema.json", "stale")

	dst, err := Copy(src, dist, "ng-add")
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if got := testutil.ReadFile(t, dst); got != schema {
		t.Errorf("copied content = %q, want %q", got, schema)
	}
}

func TestCopy_missingSource(t *testing.T) {
	root := t.TempDir()
	_, err := Copy(filepath.Join(root, "src"), filepath.Join(root, "dist"), "ng-add")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Copy() error = %v, want not-exist", err)
	}
}

func TestCopy_invalidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../ng-add", "a/b"} {
		t.Run(name, func(t *testing.T) {
			if _, err := Copy(t.TempDir(), t.TempDir(), name); err == nil {
				t.Fatalf("Copy(%q) should fail", name)
			}
		})
	}
}

func TestCopyAll_defaults(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteFile(t, src, "schematics/ng-add/schema.json", schema)

	copied, err := CopyAll(src, dist)
	if err != nil {
		t.Fatalf("CopyAll() error: %v", err)
	}
	want := []string{filepath.Join(dist, "schematics", "ng-add", "schema.json")}
	if diff := cmp.Diff(want, copied); diff != "" {
		t.Errorf("CopyAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyAll_stopsAtFirstFailure(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dist := filepath.Join(root, "dist")
	testutil.WriteFile(t, src, "schematics/ng-add/schema.json", schema)

	copied, err := CopyAll(src, dist, "ng-add", "ng-update", "ng-generate")
	if err == nil {
		t.Fatal("expected error for missing ng-update schema")
	}
	if len(copied) != 1 {
		t.Errorf("copied = %v, want only ng-add", copied)
	}
}
