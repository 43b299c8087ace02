package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngx-env/ngxenv/internal/angular"
	"github.com/ngx-env/ngxenv/internal/ngadd"
	"github.com/ngx-env/ngxenv/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func loadBuilder(t *testing.T, path, project, target string) string {
	t.Helper()
	ws, err := angular.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := ws.Project(project)
	if !ok {
		t.Fatalf("project %q not found", project)
	}
	tgt, ok := p.Target(target)
	if !ok {
		t.Fatalf("target %s not found", target)
	}
	return tgt.Builder
}

func TestRunAdd_singleApplication(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	stdout, stderr, err := execute(t, "--root", dir, "add")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if got := loadBuilder(t, path, "app", "build"); got != "@ngx-env/builder:browser" {
		t.Errorf("build builder = %q", got)
	}
	if got := loadBuilder(t, path, "app", "serve"); got != "@ngx-env/builder:dev-server" {
		t.Errorf("serve builder = %q", got)
	}
	if !strings.Contains(testutil.ReadFile(t, path), `"outputPath": "dist/app"`) {
		t.Error("build options should be preserved")
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "env.d.ts")); err != nil {
		t.Errorf("env.d.ts should be created: %v", err)
	}
	if stderr != "No default project specified in the workspace\n" {
		t.Errorf("stderr = %q, want the single notice", stderr)
	}
	for _, want := range []string{"CREATE src/env.d.ts", "UPDATE angular.json", `Project "app" now builds with @ngx-env/builder`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunAdd_ambiguous(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.MultiApp)

	stdout, _, err := execute(t, "--root", dir, "add")
	if !errors.Is(err, ngadd.ErrAmbiguousProject) {
		t.Fatalf("add error = %v, want ErrAmbiguousProject", err)
	}
	for _, want := range []string{
		" - ng add @ngx-env/builder --project admin\n",
		" - ng add @ngx-env/builder --project storefront\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing suggestion %q:\n%s", want, stdout)
		}
	}
	if testutil.ReadFile(t, path) != testutil.MultiApp {
		t.Error("angular.json should be untouched")
	}
	if _, err := os.Stat(filepath.Join(dir, "projects")); !os.IsNotExist(err) {
		t.Error("no template should be written on failure")
	}
}

func TestRunAdd_explicitProject(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.MultiApp)

	if _, _, err := execute(t, "--root", dir, "add", "--project", "storefront"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := loadBuilder(t, path, "storefront", "test"); got != "@ngx-env/builder:karma" {
		t.Errorf("test builder = %q", got)
	}
	if got := loadBuilder(t, path, "admin", "build"); got != "@angular-devkit/build-angular:browser" {
		t.Errorf("admin should be untouched, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "projects", "storefront", "src", "env.d.ts")); err != nil {
		t.Errorf("env.d.ts should be created in the storefront source root: %v", err)
	}
}

func TestRunAdd_libraryRejected(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.MultiApp)

	_, _, err := execute(t, "--root", dir, "add", "--project", "shared")
	if !errors.Is(err, ngadd.ErrUnsupportedProjectType) {
		t.Fatalf("add error = %v, want ErrUnsupportedProjectType", err)
	}
	if testutil.ReadFile(t, path) != testutil.MultiApp {
		t.Error("angular.json should be untouched")
	}
}

func TestRunAdd_missingServe(t *testing.T) {
	dir := t.TempDir()
	content := `{"projects": {"app": {"projectType": "application", "architect": {"build": {"builder": "x:browser"}}}}}`
	path := testutil.WriteWorkspace(t, dir, content)

	_, _, err := execute(t, "--root", dir, "add")
	if !errors.Is(err, ngadd.ErrRequiredTargetMissing) {
		t.Fatalf("add error = %v, want ErrRequiredTargetMissing", err)
	}
	if testutil.ReadFile(t, path) != content {
		t.Error("angular.json should be untouched")
	}
}

func TestRunAdd_dryRun(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	stdout, _, err := execute(t, "--root", dir, "add", "--dry-run")
	if err != nil {
		t.Fatalf("add --dry-run failed: %v", err)
	}
	if testutil.ReadFile(t, path) != testutil.SingleApp {
		t.Error("angular.json should be untouched with --dry-run")
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); !os.IsNotExist(err) {
		t.Error("dry run should not create the source directory")
	}
	if !strings.Contains(stdout, "@ngx-env/builder:browser") || !strings.Contains(stdout, "--dry-run") {
		t.Errorf("stdout should describe the planned changes:\n%s", stdout)
	}
}

func TestRunAdd_skipTemplate(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	if _, _, err := execute(t, "--root", dir, "add", "--skip-template"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "env.d.ts")); !os.IsNotExist(err) {
		t.Error("env.d.ts should not be created with --skip-template")
	}
}

func TestRunAdd_existingTemplateKept(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkspace(t, dir, testutil.SingleApp)
	envPath := testutil.WriteFile(t, dir, "src/env.d.ts", "// custom\n")

	_, stderr, err := execute(t, "--root", dir, "add")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if testutil.ReadFile(t, envPath) != "// custom\n" {
		t.Error("existing env.d.ts should be kept")
	}
	if !strings.Contains(stderr, "src/env.d.ts already exists") {
		t.Errorf("stderr should warn about the existing file:\n%s", stderr)
	}
}

func TestRunAdd_saveFailureWritesNoTemplate(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)
	if err := os.Chmod(path, 0444); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "--root", dir, "add"); err == nil {
		t.Fatal("add should fail when angular.json cannot be written")
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); !os.IsNotExist(err) {
		t.Error("no template should be written when saving angular.json fails")
	}
}

func TestRunAdd_templateBlockedKeepsWorkspace(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)
	if err := os.MkdirAll(filepath.Join(dir, "src", "env.d.ts"), 0755); err != nil { //nolint:gosec // test directory
		t.Fatal(err)
	}

	if _, _, err := execute(t, "--root", dir, "add"); err == nil {
		t.Fatal("add should fail when env.d.ts is a directory")
	}
	if testutil.ReadFile(t, path) != testutil.SingleApp {
		t.Error("angular.json should be untouched when the template cannot be placed")
	}
}

func TestRunAdd_idempotent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	if _, _, err := execute(t, "--root", dir, "add"); err != nil {
		t.Fatal(err)
	}
	first := testutil.ReadFile(t, path)
	if _, _, err := execute(t, "--root", dir, "add"); err != nil {
		t.Fatal(err)
	}
	if second := testutil.ReadFile(t, path); second != first {
		t.Errorf("second run changed angular.json:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRunAdd_packageFromEnv(t *testing.T) {
	t.Setenv("NGX_ENV_BUILDER_PACKAGE", "@acme/env-builder")
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	if _, _, err := execute(t, "--root", dir, "add"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := loadBuilder(t, path, "app", "build"); got != "@acme/env-builder:browser" {
		t.Errorf("build builder = %q", got)
	}
}

func TestRunAdd_verbose(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkspace(t, dir, testutil.SingleApp)

	_, stderr, err := execute(t, "--root", dir, "--verbose", "add")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	for _, want := range []string{"loaded workspace", "rewrote target", "target not defined, skipped"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("verbose stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestRunAdd_noWorkspace(t *testing.T) {
	if _, _, err := execute(t, "--root", t.TempDir(), "add"); err == nil {
		t.Fatal("expected error without angular.json")
	}
}
