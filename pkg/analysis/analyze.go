package analysis

import (
	"context"

	"k8s.io/client-go/util/workqueue"

	"github.com/mandelsoft/relplan/pkg/ctxutil"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/workspace"
)

// Analyze analyzes the given projects with up to jobs parallel
// workers and returns a database of the results. The first failing
// project (in the order of the given list) fails the complete
// analysis, no partial database is returned.
func Analyze(ctx context.Context, w *workspace.Workspace, projects []project.Handle, jobs int) (*MemoryDatabase, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*ProjectInfo, len(projects))
	errs := make([]error, len(projects))

	wctx := ctxutil.CancelContext(ctx)
	defer ctxutil.Cancel(wctx)

	log.Info("analyzing {{count}} projects with {{jobs}} workers", "count", len(projects), "jobs", jobs)
	workqueue.ParallelizeUntil(wctx, jobs, len(projects), func(i int) {
		info, err := AnalyzeProject(w, projects[i])
		if err != nil {
			errs[i] = err
			ctxutil.Cancel(wctx)
			return
		}
		results[i] = info
	})

	for _, err := range errs {
		if err != nil {
			log.Error("analysis failed", "error", err)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolveNames(results)
	return NewDatabase(results...), nil
}

// resolveNames maps dependency names without namespace to the
// workspace project with this name, if it is unique.
func resolveNames(infos []*ProjectInfo) {
	byName := map[string][]project.Handle{}
	for _, i := range infos {
		byName[i.Project.Name] = append(byName[i.Project.Name], i.Project)
	}
	for _, i := range infos {
		for j, d := range i.Dependencies {
			if d.Name.Namespace != "" {
				continue
			}
			if list := byName[d.Name.Name]; len(list) == 1 {
				i.Dependencies[j].Name = list[0]
			}
		}
	}
}
