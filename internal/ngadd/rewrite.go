// Package ngadd switches an Angular application project over to the
// @ngx-env/builder builders, the workspace half of "ng add @ngx-env/builder".
package ngadd

import (
	"errors"
	"fmt"

	"github.com/ngx-env/ngxenv/internal/angular"
)

// DefaultPackage is the npm package providing the replacement builders.
const DefaultPackage = "@ngx-env/builder"

var (
	ErrNoApplicationProject   = errors.New("no application project found in the workspace")
	ErrAmbiguousProject       = errors.New("multiple projects detected in the workspace, run one of the commands above")
	ErrProjectNotFound        = errors.New("the specified Angular project is not defined in this workspace")
	ErrUnsupportedProjectType = errors.New("unsupported Angular project type")
	ErrRequiredTargetMissing  = errors.New("required architect target missing in angular.json")
)

// Options configures a rewrite.
type Options struct {
	// Project names the project to rewrite. When empty the workspace
	// defaultProject is used, then the only application project.
	Project string
	// Package is the builder package; DefaultPackage when empty.
	Package string
}

func (o Options) pkg() string {
	if o.Package == "" {
		return DefaultPackage
	}
	return o.Package
}

// Reporter receives the human-readable lines emitted while resolving the
// project. Each call is one line.
type Reporter interface {
	Warn(msg string)
	Log(msg string)
}

// Change records one rewritten target.
type Change struct {
	Target   string
	Previous string
	Builder  string
}

// Result describes a successful rewrite.
type Result struct {
	Project string
	Changes []Change
	// Skipped lists optional targets the project does not define.
	Skipped []string
}

type targetRule struct {
	target    string
	builder   string
	mandatory bool
}

var rules = []targetRule{
	{"build", "browser", true},
	{"serve", "dev-server", true},
	{"test", "karma", false},
	{"extract-i18n", "extract-i18n", false},
	{"server", "server", false},
}

// Rewrite resolves the target project and points its architect targets at
// the builders of opts.Package. Resolution and validation complete before the
// first edit, so a failed call leaves the workspace unmodified.
func Rewrite(ws *angular.Workspace, opts Options, r Reporter) (*Result, error) {
	name, err := resolveProject(ws, opts, r)
	if err != nil {
		return nil, err
	}

	project, ok := ws.Project(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if !project.IsApplication() {
		return nil, fmt.Errorf(`%w: %s requires an Angular project type of "application" in angular.json, %q is %q`,
			ErrUnsupportedProjectType, opts.pkg(), name, project.ProjectType)
	}

	for _, rule := range rules {
		if _, ok := project.Target(rule.target); !ok && rule.mandatory {
			return nil, fmt.Errorf("%w: cannot read architect.%s.builder of project %q",
				ErrRequiredTargetMissing, rule.target, name)
		}
	}

	res := &Result{Project: name}
	for _, rule := range rules {
		t, ok := project.Target(rule.target)
		if !ok {
			res.Skipped = append(res.Skipped, rule.target)
			continue
		}
		builder := opts.pkg() + ":" + rule.builder
		if err := ws.SetBuilder(name, rule.target, builder); err != nil {
			return nil, err
		}
		res.Changes = append(res.Changes, Change{Target: rule.target, Previous: t.Builder, Builder: builder})
	}
	return res, nil
}

func resolveProject(ws *angular.Workspace, opts Options, r Reporter) (string, error) {
	if opts.Project != "" {
		return opts.Project, nil
	}
	if def := ws.DefaultProject(); def != "" {
		return def, nil
	}

	r.Warn("No default project specified in the workspace")
	var apps []string
	for _, p := range ws.Projects() {
		if p.IsApplication() {
			apps = append(apps, p.Name)
		}
	}
	switch len(apps) {
	case 0:
		return "", ErrNoApplicationProject
	case 1:
		return apps[0], nil
	}
	for _, name := range apps {
		r.Log(fmt.Sprintf(" - ng add %s --project %s", opts.pkg(), name))
	}
	return "", ErrAmbiguousProject
}
