package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/ngx-env/ngxenv/internal/angular"
)

// ErrNotFound is returned when no workspace configuration exists under root.
var ErrNotFound = errors.New("could not find an Angular workspace configuration")

// FileNames lists the workspace configuration names tried by Locate, in order.
var FileNames = []string{"angular.json", ".angular.json"}

// Context holds the resolved paths and loaded document for a workspace.
type Context struct {
	Root      string
	Path      string
	Workspace *angular.Workspace
}

// Locate returns the path of the workspace configuration under root.
func Locate(root string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, root)
}

// Load resolves the workspace root and parses its configuration. When
// explicitPath is set it is used instead of Locate; relative paths are taken
// from root.
func Load(root, explicitPath string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	path := explicitPath
	switch {
	case path == "":
		path, err = Locate(root)
		if err != nil {
			return nil, err
		}
	case !filepath.IsAbs(path):
		path = filepath.Join(root, path)
	}

	ws, err := angular.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Context{Root: root, Path: path, Workspace: ws}, nil
}

// Save writes the document back to the file it was loaded from.
func (c *Context) Save() error {
	return angular.Save(c.Path, c.Workspace)
}

// ProjectDir returns the absolute source directory of a project. The
// project's sourceRoot is resolved under Root and cannot escape it.
func (c *Context) ProjectDir(p *angular.Project) (string, error) {
	dir, err := securejoin.SecureJoin(c.Root, filepath.FromSlash(p.EffectiveSourceRoot()))
	if err != nil {
		return "", fmt.Errorf("resolving source root of %s: %w", p.Name, err)
	}
	return dir, nil
}
