// Package schemacopy copies schematic option schemas into the distribution
// tree when the builder package is packaged.
package schemacopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// DefaultSchematics lists the schematics shipped with the builder package.
var DefaultSchematics = []string{"ng-add"}

// Copy copies <srcRoot>/schematics/<name>/schema.json to the same relative
// path under distRoot and returns the destination path. The content is not
// inspected.
func Copy(srcRoot, distRoot, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid schematic name %q", name)
	}
	rel := filepath.Join("schematics", name, "schema.json")

	src, err := securejoin.SecureJoin(srcRoot, rel)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rel, err)
	}
	dst, err := securejoin.SecureJoin(distRoot, rel)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rel, err)
	}

	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("copying %s schema: %w", name, err)
	}
	return dst, nil
}

// CopyAll copies the schema of each named schematic, DefaultSchematics when
// none are given. It stops at the first failure.
func CopyAll(srcRoot, distRoot string, names ...string) ([]string, error) {
	if len(names) == 0 {
		names = DefaultSchematics
	}
	copied := make([]string, 0, len(names))
	for _, name := range names {
		dst, err := Copy(srcRoot, distRoot, name)
		if err != nil {
			return copied, err
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path resolved under the source root
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil { //nolint:gosec // dist tree needs to be world-readable
		return err
	}
	out, err := os.Create(dst) //nolint:gosec // path resolved under the dist root
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
