package analysis

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/relplan/pkg/project"
)

var ErrNoAnalyzer = errors.New("no analyzer")

// AnalysisError reports that the facts of a project could not be
// determined.
type AnalysisError struct {
	Project project.Handle
	Err     error
}

func NewAnalysisError(h project.Handle, err error) error {
	return &AnalysisError{Project: h, Err: err}
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("cannot analyze project %s: %s", e.Project, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
