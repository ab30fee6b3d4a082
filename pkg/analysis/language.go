package analysis

import (
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/workspace"
)

// Language is the ecosystem of a project. The set of languages is
// closed, every language provides its own Analyzer.
type Language string

const (
	ELIXIR  = Language("elixir")
	UNKNOWN = Language("unknown")
)

// Analyzer determines the facts of a project.
type Analyzer interface {
	Analyze(w *workspace.Workspace, h project.Handle) (*ProjectInfo, error)
}

// DetectLanguage determines the language of a project by
// its manifest files.
func DetectLanguage(w *workspace.Workspace, h project.Handle) (Language, error) {
	ok, err := vfs.FileExists(w.FileSystem(), elixirManifest(w, h))
	if err != nil {
		return UNKNOWN, err
	}
	if ok {
		return ELIXIR, nil
	}
	return UNKNOWN, nil
}

func (l Language) Analyzer() (Analyzer, error) {
	switch l {
	case ELIXIR:
		return elixir{}, nil
	default:
		return nil, fmt.Errorf("%w for language %q", ErrNoAnalyzer, l)
	}
}

// AnalyzeProject detects the language of a project and analyzes it
// with the analyzer of this language.
func AnalyzeProject(w *workspace.Workspace, h project.Handle) (*ProjectInfo, error) {
	lang, err := DetectLanguage(w, h)
	if err != nil {
		return nil, NewAnalysisError(h, err)
	}
	a, err := lang.Analyzer()
	if err != nil {
		return nil, NewAnalysisError(h, err)
	}
	info, err := a.Analyze(w, h)
	if err != nil {
		return nil, NewAnalysisError(h, err)
	}
	return info, nil
}
