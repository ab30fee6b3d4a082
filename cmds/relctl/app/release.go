package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/release"
)

func NewRelease(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "release <cmd> <args>",
		Short:            "plan and execute a phased release",
		TraverseChildren: true,
	}
	cmd.AddCommand(NewPlan(opts))
	cmd.AddCommand(NewStatus(opts))
	cmd.AddCommand(NewAdvance(opts))
	cmd.AddCommand(NewPatch(opts))
	cmd.AddCommand(NewAbort(opts))
	return cmd
}

func state(r *release.ReleaseState) string {
	switch {
	case r.IsDone():
		return "done"
	case r.IsClean():
		return "not started"
	default:
		return "in progress"
	}
}

// PrintRelease prints the phases of a release in human readable form.
func PrintRelease(w io.Writer, r *release.ReleaseState) {
	fmt.Fprintf(w, "release %s (%s)\n", r.Codename, state(r))
	fmt.Fprintf(w, "checksum %s\n", r.Checksum)
	if len(r.Phases) == 0 {
		fmt.Fprintf(w, "nothing to release\n")
		return
	}
	cur := r.CurrentPhaseIndex()
	for i, p := range r.Phases {
		mark := ""
		if i == cur && !r.IsDone() {
			mark = " [current]"
		}
		fmt.Fprintf(w, "phase %d%s\n", i, mark)
		for _, s := range p.Projects {
			fmt.Fprintf(w, "  %s %s -> %s (%s)\n", s.Project, s.FromVersion, s.ToVersion, s.Stage)
			for _, u := range s.DependencyUpdates {
				fmt.Fprintf(w, "    %s: %s -> %s\n", u.Name, u.FromSpec, u.ToSpec)
			}
		}
	}
}
