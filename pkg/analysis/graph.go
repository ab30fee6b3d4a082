package analysis

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/utils"
)

// DependentsGraph maps projects to the projects directly depending
// on them. It is immutable after creation.
type DependentsGraph struct {
	dependents map[project.Handle]sets.Set[project.Handle]
}

// BuildDependentsGraph inverts the declared dependencies of all
// projects of the database. Every project and every dependency
// target is a key of the graph.
func BuildDependentsGraph(db Database) *DependentsGraph {
	g := &DependentsGraph{dependents: map[project.Handle]sets.Set[project.Handle]{}}
	for _, p := range db.Projects() {
		g.key(p)
		info := db.About(p)
		if info == nil {
			continue
		}
		for _, d := range info.Dependencies {
			g.key(d.Name).Insert(p)
		}
	}
	log.Debug("dependents graph with {{count}} projects", "count", len(g.dependents))
	return g
}

func (g *DependentsGraph) key(h project.Handle) sets.Set[project.Handle] {
	s := g.dependents[h]
	if s == nil {
		s = sets.New[project.Handle]()
		g.dependents[h] = s
	}
	return s
}

// DependentsOf returns the sorted direct dependents of a project.
// It is empty for unknown projects.
func (g *DependentsGraph) DependentsOf(h project.Handle) []project.Handle {
	s := g.dependents[h]
	if s == nil {
		return nil
	}
	list := s.UnsortedList()
	slices.SortFunc(list, project.Compare)
	return list
}

func (g *DependentsGraph) Has(h project.Handle) bool {
	_, ok := g.dependents[h]
	return ok
}

func (g *DependentsGraph) Projects() []project.Handle {
	return utils.MapKeys(g.dependents, project.Compare)
}
