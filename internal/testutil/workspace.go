package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SingleApp is a workspace with one application project, no defaultProject
// and only the mandatory build and serve targets.
const SingleApp = `{
  "version": 1,
  "projects": {
    "app": {
      "projectType": "application",
      "root": "",
      "sourceRoot": "src",
      "architect": {
        "build": {
          "builder": "@angular-devkit/build-angular:browser",
          "options": {
            "outputPath": "dist/app"
          }
        },
        "serve": {
          "builder": "@angular-devkit/build-angular:dev-server"
        }
      }
    }
  }
}`

// MultiApp is a workspace with two application projects and a library,
// and no defaultProject.
const MultiApp = `{
  "version": 1,
  "projects": {
    "admin": {
      "projectType": "application",
      "root": "projects/admin",
      "prefix": "adm",
      "architect": {
        "build": {"builder": "@angular-devkit/build-angular:browser"},
        "serve": {"builder": "@angular-devkit/build-angular:dev-server"}
      }
    },
    "shared": {
      "projectType": "library",
      "root": "projects/shared",
      "architect": {
        "build": {"builder": "@angular-devkit/build-angular:ng-packagr"}
      }
    },
    "storefront": {
      "projectType": "application",
      "root": "projects/storefront",
      "architect": {
        "build": {"builder": "@angular-devkit/build-angular:browser"},
        "serve": {"builder": "@angular-devkit/build-angular:dev-server"},
        "test": {"builder": "@angular-devkit/build-angular:karma", "options": {"watch": false}}
      }
    }
  }
}`

// WriteWorkspace writes content as angular.json in dir and returns its path.
func WriteWorkspace(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, dir, "angular.json", content)
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil { //nolint:gosec // test directory
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return p
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
