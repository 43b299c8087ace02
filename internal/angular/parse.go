package angular

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Workspace is a parsed angular.json document.
//
// The document is kept as JSON bytes rather than decoded into Go maps, so key
// order and every option this package knows nothing about are written back
// exactly as they were read.
type Workspace struct {
	raw []byte
}

// prettyOptions reproduces JSON.stringify(doc, null, 2): two-space indent,
// original key order, and one element per line in arrays. A width of 1 never
// fits a single-line array.
var prettyOptions = &pretty.Options{Width: 1, Indent: "  "}

// Load reads and parses an angular.json file.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace file
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w", err)
	}
	return Parse(data)
}

// Parse parses angular.json content. Comments and trailing commas are
// accepted, as the Angular CLI accepts them.
//
// A key repeated in any object this package reads or edits is rejected: reads
// and edits address the first occurrence while JSON.parse keeps the last, so
// such a document cannot be rewritten consistently.
func Parse(data []byte) (*Workspace, error) {
	stripped := jsonc.ToJSON(data)
	if !gjson.ValidBytes(stripped) {
		return nil, fmt.Errorf("parsing workspace JSON: invalid document")
	}
	doc := gjson.ParseBytes(stripped)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parsing workspace JSON: top level must be an object")
	}
	if err := checkDuplicateKeys(doc); err != nil {
		return nil, fmt.Errorf("parsing workspace JSON: %w", err)
	}
	return &Workspace{raw: stripped}, nil
}

// checkDuplicateKeys walks the document down to the architect target
// configurations.
func checkDuplicateKeys(doc gjson.Result) error {
	if err := uniqueKeys("top level", doc); err != nil {
		return err
	}
	projects := doc.Get("projects")
	if !projects.IsObject() {
		return nil
	}
	if err := uniqueKeys("projects", projects); err != nil {
		return err
	}
	var err error
	projects.ForEach(func(name, project gjson.Result) bool {
		err = checkProjectKeys(name.String(), project)
		return err == nil
	})
	return err
}

func checkProjectKeys(name string, project gjson.Result) error {
	if !project.IsObject() {
		return nil
	}
	where := fmt.Sprintf("project %q", name)
	if err := uniqueKeys(where, project); err != nil {
		return err
	}
	architect := project.Get("architect")
	if !architect.IsObject() {
		return nil
	}
	if err := uniqueKeys(where+" architect", architect); err != nil {
		return err
	}
	var err error
	architect.ForEach(func(target, config gjson.Result) bool {
		if config.IsObject() {
			err = uniqueKeys(fmt.Sprintf("%s target %q", where, target.String()), config)
		}
		return err == nil
	})
	return err
}

func uniqueKeys(where string, obj gjson.Result) error {
	seen := make(map[string]bool)
	var dup string
	obj.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if seen[k] {
			dup = k
			return false
		}
		seen[k] = true
		return true
	})
	if dup != "" {
		return fmt.Errorf("%s: key %q is defined more than once", where, dup)
	}
	return nil
}

// Save writes the workspace document to disk.
func Save(path string, ws *Workspace) error {
	if err := os.WriteFile(path, ws.Bytes(), 0644); err != nil { //nolint:gosec // angular.json needs to be readable
		return fmt.Errorf("writing workspace: %w", err)
	}
	return nil
}

// Bytes serializes the document with two-space indentation and no trailing
// newline.
func (ws *Workspace) Bytes() []byte {
	return bytes.TrimSuffix(pretty.PrettyOptions(ws.raw, prettyOptions), []byte("\n"))
}

// DefaultProject returns the defaultProject field, or "" when unset.
func (ws *Workspace) DefaultProject() string {
	return gjson.GetBytes(ws.raw, "defaultProject").String()
}

// ProjectNames returns the project names in document order.
func (ws *Workspace) ProjectNames() []string {
	var names []string
	ws.eachProject(func(name string, _ gjson.Result) {
		names = append(names, name)
	})
	return names
}

// Projects returns every project in document order.
func (ws *Workspace) Projects() []*Project {
	names := ws.ProjectNames()
	projects := make([]*Project, 0, len(names))
	for _, name := range names {
		p, _ := ws.Project(name)
		projects = append(projects, p)
	}
	return projects
}

// Project returns the named project.
func (ws *Workspace) Project(name string) (*Project, bool) {
	var found *Project
	ws.eachProject(func(n string, v gjson.Result) {
		if n == name {
			found = projectFrom(n, v)
		}
	})
	return found, found != nil
}

// SetBuilder replaces the builder of one architect target. Every other key of
// the target configuration is preserved.
func (ws *Workspace) SetBuilder(project, target, builder string) error {
	p, ok := ws.Project(project)
	if !ok {
		return fmt.Errorf("project %q is not defined", project)
	}
	if _, ok := p.Target(target); !ok {
		return fmt.Errorf("project %q has no %q target", project, target)
	}
	path := "projects." + gjson.Escape(project) + ".architect." + gjson.Escape(target) + ".builder"
	out, err := sjson.SetBytes(ws.raw, path, builder)
	if err != nil {
		return fmt.Errorf("setting %s builder of %s: %w", target, project, err)
	}
	ws.raw = out
	return nil
}

func (ws *Workspace) eachProject(fn func(name string, value gjson.Result)) {
	projects := gjson.GetBytes(ws.raw, "projects")
	if !projects.IsObject() {
		return
	}
	projects.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			fn(key.String(), value)
		}
		return true
	})
}

// projectFrom builds a Project view. Only object-valued architect entries
// count as targets; null or scalar entries are treated as absent.
func projectFrom(name string, v gjson.Result) *Project {
	p := &Project{
		Name:        name,
		ProjectType: ProjectType(v.Get("projectType").String()),
		Root:        v.Get("root").String(),
		SourceRoot:  v.Get("sourceRoot").String(),
		Prefix:      v.Get("prefix").String(),
	}
	architect := v.Get("architect")
	if !architect.IsObject() {
		return p
	}
	architect.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			p.Targets = append(p.Targets, Target{
				Name:    key.String(),
				Builder: value.Get("builder").String(),
			})
		}
		return true
	})
	return p
}
