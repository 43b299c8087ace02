package angular

import "path"

// ProjectType is the declared kind of an Angular project.
type ProjectType string

// ProjectTypeApplication is the only project type ng add accepts.
const ProjectTypeApplication ProjectType = "application"

// Project is a read-only view of one entry under "projects" in angular.json.
// Mutations go through Workspace so that unknown keys survive untouched.
type Project struct {
	Name        string
	ProjectType ProjectType
	Root        string
	SourceRoot  string
	Prefix      string
	Targets     []Target
}

// Target is a named architect entry such as "build" or "serve".
type Target struct {
	Name    string
	Builder string
}

// IsApplication reports whether the project is of type "application".
func (p *Project) IsApplication() bool {
	return p.ProjectType == ProjectTypeApplication
}

// Target returns the architect entry with the given name.
func (p *Project) Target(name string) (Target, bool) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// EffectiveSourceRoot returns sourceRoot, falling back to <root>/src.
// Paths are workspace-relative and always use forward slashes.
func (p *Project) EffectiveSourceRoot() string {
	if p.SourceRoot != "" {
		return p.SourceRoot
	}
	return path.Join(p.Root, "src")
}
