package release

import (
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/checksum"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/utils"
	"github.com/mandelsoft/relplan/pkg/version"
)

// Plan computes the phased release of a project to a new version.
//
// Phase 0 releases the requested project. Every following phase
// releases the dependents of the projects of the previous phases
// whose declared dependency specs do not accept the new upstream
// versions. A dependent waiting for another affected dependent is
// deferred to a later phase, so that every project is released
// after all of its affected upstream projects.
//
// The checksum and codename of the plan are derived from the
// database snapshot. The name generator may be replaced by gen.
func Plan(root project.Handle, to version.Version, db analysis.Database, graph *analysis.DependentsGraph, gen ...checksum.NameGenerator) (*ReleaseState, error) {
	info := db.About(root)
	if info == nil {
		return nil, &PlanError{Project: root, Version: to, Reason: "unknown project"}
	}
	if to.LessThan(info.Version) {
		return nil, &PlanError{Project: root, Version: to, Reason: fmt.Sprintf("current version %s is newer", info.Version)}
	}

	sum, err := checksum.Of(db.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("cannot determine database checksum: %w", err)
	}
	state := &ReleaseState{
		Codename: sum.Codename(gen...),
		Checksum: sum,
		Sources:  map[project.Handle]version.Version{root: to},
	}
	if to.Compare(info.Version) == 0 {
		log.Info("{{project}} already at version {{version}}", "project", root, "version", to)
		return state, nil
	}

	p := &planner{
		db:      db,
		graph:   graph,
		planned: map[project.Handle]int{},
	}
	p.run(&ProjectState{
		Project:     root,
		Language:    info.Language,
		FromVersion: info.Version,
		ToVersion:   to,
		VersionSpan: info.VersionSpan,
	})
	state.Phases = p.phases
	log.Info("release {{codename}}: {{project}} {{version}} planned with {{phases}} phase(s)",
		"codename", state.Codename, "project", root, "version", to, "phases", len(state.Phases))
	return state, nil
}

type planner struct {
	db      analysis.Database
	graph   *analysis.DependentsGraph
	planned map[project.Handle]int
	phases  []*PhaseState
}

func (p *planner) state(h project.Handle) *ProjectState {
	i, ok := p.planned[h]
	if !ok {
		return nil
	}
	return p.phases[i].Find(h)
}

func (p *planner) run(root *ProjectState) {
	frontier := p.schedule([]*ProjectState{root})
	deferred := sets.New[project.Handle]()
	for {
		candidates := deferred
		for _, s := range frontier {
			for _, d := range p.graph.DependentsOf(s.Project) {
				if _, ok := p.planned[d]; !ok {
					candidates.Insert(d)
				}
			}
		}
		if candidates.Len() == 0 {
			return
		}

		affected := map[project.Handle]*ProjectState{}
		for _, d := range sorted(candidates) {
			if s := p.assess(d); s != nil {
				affected[d] = s
			}
		}
		ready, waiting := p.order(affected)
		if len(ready) == 0 {
			return
		}
		frontier = p.schedule(ready)
		deferred = sets.New(waiting...)
	}
}

// assess determines the release of a dependent caused by the
// already planned projects. It is nil if all declared specs
// accept the new versions.
func (p *planner) assess(h project.Handle) *ProjectState {
	info := p.db.About(h)
	if info == nil {
		// dependency targets outside the database are never released
		return nil
	}

	var updates []DependencyUpdate
	var severity version.Severity
	for _, dep := range info.Dependencies {
		up := p.state(dep.Name)
		if up == nil || dep.Name == h {
			continue
		}
		if dep.Spec.Satisfies(up.ToVersion) {
			log.Debug("{{project}}: spec {{spec}} on {{upstream}} accepts {{version}}",
				"project", h, "spec", dep.Spec, "upstream", dep.Name, "version", up.ToVersion)
			continue
		}
		updates = append(updates, DependencyUpdate{
			Name:       dep.Name,
			FromSpec:   dep.Spec,
			ToSpec:     dep.Spec.Targeting(up.ToVersion),
			ToSpecSpan: dep.Span,
		})
		severity = version.MaxSeverity(severity, induced(up.FromVersion.BumpSeverity(up.ToVersion)))
	}
	if len(updates) == 0 {
		return nil
	}
	return &ProjectState{
		Project:           h,
		Language:          info.Language,
		FromVersion:       info.Version,
		ToVersion:         info.Version.Bump(severity),
		VersionSpan:       info.VersionSpan,
		DependencyUpdates: updates,
	}
}

// induced maps the severity of an upstream release to the severity
// of the release of a dependent adapting its dependency spec.
func induced(s version.Severity) version.Severity {
	if s == version.MAJOR {
		return version.MINOR
	}
	return version.PATCH
}

// order splits the affected dependents into the ones which can be
// released now and the ones depending on another affected project.
func (p *planner) order(affected map[project.Handle]*ProjectState) ([]*ProjectState, []project.Handle) {
	var ready []*ProjectState
	var waiting []project.Handle

	keys := utils.MapKeys(affected, project.Compare)
	for _, h := range keys {
		blocked := false
		for _, dep := range p.db.About(h).Dependencies {
			if dep.Name != h && affected[dep.Name] != nil {
				blocked = true
				break
			}
		}
		if blocked {
			waiting = append(waiting, h)
		} else {
			ready = append(ready, affected[h])
		}
	}
	if len(ready) == 0 && len(waiting) > 0 {
		log.Warn("dependency cycle between {{projects}}: releasing {{project}} first",
			"projects", keys, "project", waiting[0])
		ready = append(ready, affected[waiting[0]])
		waiting = waiting[1:]
	}
	return ready, waiting
}

// schedule appends a new phase.
func (p *planner) schedule(states []*ProjectState) []*ProjectState {
	slices.SortFunc(states, func(a, b *ProjectState) int { return project.Compare(a.Project, b.Project) })
	idx := len(p.phases)
	p.phases = append(p.phases, &PhaseState{Projects: states})
	for _, s := range states {
		p.planned[s.Project] = idx
		log.Debug("phase {{phase}}: {{project}} {{from}} -> {{to}}",
			"phase", idx, "project", s.Project, "from", s.FromVersion, "to", s.ToVersion)
	}
	for _, s := range states {
		for _, d := range p.graph.DependentsOf(s.Project) {
			i, ok := p.planned[d]
			if !ok || i >= idx {
				continue
			}
			info := p.db.About(d)
			if info == nil {
				continue
			}
			dep := info.Dependency(s.Project)
			if dep != nil && !dep.Spec.Satisfies(s.ToVersion) {
				log.Warn("{{project}} released in phase {{phase}} before its dependency {{upstream}}: spec {{spec}} does not accept {{version}}",
					"project", d, "phase", i, "upstream", s.Project, "spec", dep.Spec, "version", s.ToVersion)
			}
		}
	}
	return states
}

func sorted(s sets.Set[project.Handle]) []project.Handle {
	list := s.UnsortedList()
	slices.SortFunc(list, project.Compare)
	return list
}
