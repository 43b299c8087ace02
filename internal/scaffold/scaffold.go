// Package scaffold writes the files that "ng add" drops into an application's
// source directory. The template tree is embedded in the binary.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

//go:embed all:template
var templateFS embed.FS

const templateRoot = "template"

// Options controls how Materialize treats the destination.
type Options struct {
	// Force overwrites files that already exist.
	Force bool
	// DryRun reports what would be written without touching the disk.
	DryRun bool
}

// Report lists the destination paths handled by Materialize.
type Report struct {
	Written []string
	Skipped []string
}

// Files returns the template paths relative to the destination directory.
func Files() ([]string, error) {
	var files []string
	err := fs.WalkDir(templateFS, templateRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, strings.TrimPrefix(p, templateRoot+"/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return files, nil
}

// Materialize copies the template tree under destDir. Existing files are
// kept unless opts.Force is set.
func Materialize(destDir string, opts Options) (*Report, error) {
	files, err := Files()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, rel := range files {
		target, err := securejoin.SecureJoin(destDir, filepath.FromSlash(rel))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", rel, err)
		}

		exists, err := fileExists(target)
		if err != nil {
			return nil, err
		}
		if exists && !opts.Force {
			report.Skipped = append(report.Skipped, target)
			continue
		}

		if !opts.DryRun {
			if err := writeTemplate(rel, target); err != nil {
				return nil, err
			}
		}
		report.Written = append(report.Written, target)
	}
	return report, nil
}

func writeTemplate(rel, target string) error {
	data, err := templateFS.ReadFile(templateRoot + "/" + rel)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil { //nolint:gosec // source directories need to be world-readable
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil { //nolint:gosec // source files need to be readable
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

func fileExists(p string) (bool, error) {
	info, err := os.Stat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("checking %s: %w", p, err)
	case info.IsDir():
		return false, fmt.Errorf("%s is a directory", p)
	}
	return true, nil
}
