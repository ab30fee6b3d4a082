package release

import (
	"fmt"

	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/version"
)

// PlanError reports a release request which cannot be planned.
type PlanError struct {
	Project project.Handle
	Version version.Version
	Reason  string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("cannot plan release of %s %s: %s", e.Project, e.Version, e.Reason)
}

// StageTransitionError reports an invalid attempt to advance
// the stage of a project.
type StageTransitionError struct {
	Project project.Handle
	Stage   Stage
	Reason  string
}

func (e *StageTransitionError) Error() string {
	if e.Project.IsZero() {
		return fmt.Sprintf("cannot advance stage %s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("cannot advance project %s in stage %s: %s", e.Project, e.Stage, e.Reason)
}
