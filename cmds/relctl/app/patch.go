package app

import (
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/edit"
	"github.com/mandelsoft/relplan/pkg/release"
)

type Patch struct {
	cmd *cobra.Command

	mainopts *Options
}

func NewPatch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "rewrite the manifests of the projects of the current phase",
		Long: `
Sets the new versions and dependency specs in the manifests of
all projects of the current phase, which have not yet been started.
Already patched projects are skipped.
`,
		Args: cobra.NoArgs,
	}

	c := &Patch{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	return cmd
}

func (c *Patch) Run(args []string) error {
	w, err := c.mainopts.Workspace()
	if err != nil {
		return err
	}
	s, err := c.mainopts.Store()
	if err != nil {
		return err
	}
	r, err := s.Load()
	if err != nil {
		return err
	}
	phase := r.CurrentPhase()
	if phase == nil || r.IsDone() {
		fmt.Fprintf(c.cmd.OutOrStdout(), "nothing to patch\n")
		return nil
	}

	var edits []edit.Edit
	for _, p := range phase.Projects {
		if !p.Stage.IsInitial() {
			continue
		}
		ok, err := c.pending(w.FileSystem(), w.Path(), p)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(c.cmd.OutOrStdout(), "%s: already patched\n", p.Project)
			continue
		}
		edits = append(edits, p.Edits()...)
		fmt.Fprintf(c.cmd.OutOrStdout(), "%s: %s -> %s\n", p.Project, p.FromVersion, p.ToVersion)
	}
	return edit.Apply(w.FileSystem(), w.Path(), edits...)
}

// pending checks whether the manifest of a project still declares
// the version before the release.
func (c *Patch) pending(fs vfs.FileSystem, root string, p *release.ProjectState) (bool, error) {
	text, err := edit.Text(fs, root, p.VersionSpan)
	if err != nil {
		return false, fmt.Errorf("%s: %w", p.Project, err)
	}
	switch text {
	case p.FromVersion.String():
		return true, nil
	case p.ToVersion.String():
		return false, nil
	default:
		return false, fmt.Errorf("%s: manifest declares version %q, expected %s", p.Project, text, p.FromVersion)
	}
}
