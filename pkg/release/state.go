package release

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/checksum"
	"github.com/mandelsoft/relplan/pkg/edit"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/version"
)

// DependencyUpdate describes the rewrite of a dependency spec
// required by the release of an upstream project.
type DependencyUpdate struct {
	Name       project.Handle `json:"name"`
	FromSpec   version.Spec   `json:"fromSpec"`
	ToSpec     version.Spec   `json:"toSpec"`
	ToSpecSpan edit.Span      `json:"toSpecSpan"`
}

// ProjectState is the release of a single project within a phase.
// The stage is the only field changing after planning, it is
// modified by Advance.
type ProjectState struct {
	Project           project.Handle     `json:"project"`
	Language          analysis.Language  `json:"language"`
	FromVersion       version.Version    `json:"fromVersion"`
	ToVersion         version.Version    `json:"toVersion"`
	VersionSpan       edit.Span          `json:"versionSpan"`
	DependencyUpdates []DependencyUpdate `json:"dependencyUpdates,omitempty"`
	Stage             Stage              `json:"stage"`
}

// Advance moves the project to its next stage.
func (s *ProjectState) Advance() (Stage, error) {
	n, err := s.Stage.Next()
	if err != nil {
		var te *StageTransitionError
		if errors.As(err, &te) {
			te.Project = s.Project
		}
		return s.Stage, err
	}
	log.Debug("{{project}}: {{from}} -> {{to}}", "project", s.Project, "from", s.Stage, "to", n)
	s.Stage = n
	return n, nil
}

// Edits returns the manifest rewrites for the release of the project.
func (s *ProjectState) Edits() []edit.Edit {
	var edits []edit.Edit
	if !s.VersionSpan.IsZero() {
		edits = append(edits, edit.Edit{Span: s.VersionSpan, Text: s.ToVersion.String()})
	}
	for _, u := range s.DependencyUpdates {
		if !u.ToSpecSpan.IsZero() {
			edits = append(edits, edit.Edit{Span: u.ToSpecSpan, Text: u.ToSpec.String()})
		}
	}
	return edits
}

func (s *ProjectState) String() string {
	return fmt.Sprintf("%s %s -> %s (%s)", s.Project, s.FromVersion, s.ToVersion, s.Stage)
}

////////////////////////////////////////////////////////////////////////////////

// PhaseState is a set of project releases which may be executed
// concurrently. All of them must be done before the next phase
// may start.
type PhaseState struct {
	Projects []*ProjectState `json:"projects"`
}

func (p *PhaseState) IsClean() bool {
	for _, s := range p.Projects {
		if !s.Stage.IsInitial() {
			return false
		}
	}
	return true
}

func (p *PhaseState) IsDone() bool {
	for _, s := range p.Projects {
		if !s.Stage.IsFinal() {
			return false
		}
	}
	return true
}

func (p *PhaseState) IsInProgress() bool {
	return !p.IsClean() && !p.IsDone()
}

func (p *PhaseState) Find(h project.Handle) *ProjectState {
	for _, s := range p.Projects {
		if s.Project == h {
			return s
		}
	}
	return nil
}

// Edits returns the manifest rewrites of all projects of the phase.
func (p *PhaseState) Edits() []edit.Edit {
	var edits []edit.Edit
	for _, s := range p.Projects {
		edits = append(edits, s.Edits()...)
	}
	return edits
}

////////////////////////////////////////////////////////////////////////////////

// ReleaseState is a planned release. Sources holds the requested
// target versions, the phases the complete ordered plan. After
// planning only the project stages change.
type ReleaseState struct {
	Codename   string                             `json:"codename,omitempty"`
	Checksum   checksum.Checksum                  `json:"checksum"`
	Generation int64                              `json:"generation"`
	Sources    map[project.Handle]version.Version `json:"sources"`
	Phases     []*PhaseState                      `json:"phases,omitempty"`
}

func (r *ReleaseState) GetGeneration() int64 {
	return r.Generation
}

func (r *ReleaseState) SetGeneration(g int64) {
	r.Generation = g
}

// CurrentPhaseIndex returns the index of the first phase not yet done,
// or of the last phase if all are done. It is -1 for a release
// without phases.
func (r *ReleaseState) CurrentPhaseIndex() int {
	for i, p := range r.Phases {
		if !p.IsDone() {
			return i
		}
	}
	return len(r.Phases) - 1
}

func (r *ReleaseState) CurrentPhase() *PhaseState {
	i := r.CurrentPhaseIndex()
	if i < 0 {
		return nil
	}
	return r.Phases[i]
}

func (r *ReleaseState) IsClean() bool {
	for _, p := range r.Phases {
		if !p.IsClean() {
			return false
		}
	}
	return true
}

func (r *ReleaseState) IsDone() bool {
	for _, p := range r.Phases {
		if !p.IsDone() {
			return false
		}
	}
	return true
}

func (r *ReleaseState) IsInProgress() bool {
	return !r.IsClean() && !r.IsDone()
}

// Find returns the phase index and state of a project, or -1 and nil
// if the project is not part of the release.
func (r *ReleaseState) Find(h project.Handle) (int, *ProjectState) {
	for i, p := range r.Phases {
		if s := p.Find(h); s != nil {
			return i, s
		}
	}
	return -1, nil
}

// Projects returns all projects of the release in plan order.
func (r *ReleaseState) Projects() []*ProjectState {
	var list []*ProjectState
	for _, p := range r.Phases {
		list = append(list, p.Projects...)
	}
	return list
}

// Advance moves a project of the current phase to its next stage.
// Projects of later phases cannot be advanced before all projects
// of the earlier phases are done.
func (r *ReleaseState) Advance(h project.Handle) (Stage, error) {
	i, s := r.Find(h)
	if s == nil {
		return STAGE_NOT_STARTED, &StageTransitionError{Project: h, Reason: "project is not part of the release"}
	}
	if cur := r.CurrentPhaseIndex(); i > cur {
		return s.Stage, &StageTransitionError{Project: h, Stage: s.Stage,
			Reason: fmt.Sprintf("phase %d not started, phase %d not yet done", i, cur)}
	}
	return s.Advance()
}

// Validate checks the structural invariants of a plan: every project
// appears at most once, no phase is empty, every requested project
// is part of the first phase and every project of a later phase is
// released because of a project of an earlier phase.
func (r *ReleaseState) Validate() error {
	seen := map[project.Handle]int{}
	for i, p := range r.Phases {
		if len(p.Projects) == 0 {
			return fmt.Errorf("phase %d is empty", i)
		}
		for _, s := range p.Projects {
			if s == nil {
				return fmt.Errorf("phase %d: missing project state", i)
			}
			if j, ok := seen[s.Project]; ok {
				return fmt.Errorf("project %s planned in phases %d and %d", s.Project, j, i)
			}
			seen[s.Project] = i
			if s.ToVersion.Compare(s.FromVersion) <= 0 {
				return fmt.Errorf("project %s: target version %s not after %s", s.Project, s.ToVersion, s.FromVersion)
			}
			if i == 0 {
				if _, ok := r.Sources[s.Project]; !ok {
					return fmt.Errorf("project %s of phase 0 is not a requested release", s.Project)
				}
				continue
			}
			if len(s.DependencyUpdates) == 0 {
				return fmt.Errorf("project %s in phase %d without dependency update", s.Project, i)
			}
			for _, u := range s.DependencyUpdates {
				if j, ok := seen[u.Name]; !ok || j >= i {
					return fmt.Errorf("project %s in phase %d: upstream %s not released in an earlier phase", s.Project, i, u.Name)
				}
			}
		}
	}
	if len(r.Phases) == 0 {
		return nil
	}
	for h, v := range r.Sources {
		i, s := r.Find(h)
		if s == nil || i != 0 {
			return fmt.Errorf("requested project %s not part of phase 0", h)
		}
		if s.ToVersion.Compare(v) != 0 {
			return fmt.Errorf("requested project %s planned with version %s instead of %s", h, s.ToVersion, v)
		}
	}
	return nil
}
