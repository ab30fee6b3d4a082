package analysis

import (
	"slices"

	"github.com/mandelsoft/relplan/pkg/edit"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/utils"
	"github.com/mandelsoft/relplan/pkg/version"
)

// Dependency is a declared version constraint on another project.
type Dependency struct {
	Name project.Handle `json:"name"`
	Spec version.Spec   `json:"spec"`
	Span edit.Span      `json:"span"`
}

// ProjectInfo describes the facts of a project determined by
// an analyzer.
type ProjectInfo struct {
	Project      project.Handle  `json:"project"`
	Language     Language        `json:"language"`
	Version      version.Version `json:"version"`
	VersionSpan  edit.Span       `json:"versionSpan"`
	Dependencies []Dependency    `json:"dependencies,omitempty"`
}

func (p *ProjectInfo) Dependency(h project.Handle) *Dependency {
	for i := range p.Dependencies {
		if p.Dependencies[i].Name == h {
			return &p.Dependencies[i]
		}
	}
	return nil
}

func (p *ProjectInfo) copy() *ProjectInfo {
	c := *p
	c.Dependencies = slices.Clone(p.Dependencies)
	slices.SortFunc(c.Dependencies, func(a, b Dependency) int { return project.Compare(a.Name, b.Name) })
	return &c
}

// Database provides read access to the facts of the projects of
// a workspace.
type Database interface {
	// Projects returns the sorted list of known projects.
	Projects() []project.Handle
	// About returns the facts of a project or nil for an
	// unknown one.
	About(project.Handle) *ProjectInfo
	// Snapshot returns the complete content in a form suitable
	// for canonical serialization.
	Snapshot() map[project.Handle]*ProjectInfo
}

type MemoryDatabase struct {
	projects map[project.Handle]*ProjectInfo
}

var _ Database = (*MemoryDatabase)(nil)

// NewDatabase creates a database from a set of project infos.
// Dependencies are kept sorted by name.
func NewDatabase(infos ...*ProjectInfo) *MemoryDatabase {
	db := &MemoryDatabase{projects: map[project.Handle]*ProjectInfo{}}
	for _, i := range infos {
		if i != nil {
			db.projects[i.Project] = i.copy()
		}
	}
	return db
}

func (d *MemoryDatabase) Projects() []project.Handle {
	return utils.MapKeys(d.projects, project.Compare)
}

func (d *MemoryDatabase) About(h project.Handle) *ProjectInfo {
	return d.projects[h]
}

func (d *MemoryDatabase) Snapshot() map[project.Handle]*ProjectInfo {
	r := make(map[project.Handle]*ProjectInfo, len(d.projects))
	for h, i := range d.projects {
		r[h] = i
	}
	return r
}
