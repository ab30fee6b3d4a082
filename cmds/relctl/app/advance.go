package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/release"
)

type Advance struct {
	cmd *cobra.Command

	mainopts *Options
}

func NewAdvance(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <project> {<project>}",
		Short: "advance projects of the current phase to their next stage",
		Args:  cobra.MinimumNArgs(1),
	}

	c := &Advance{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	return cmd
}

func (c *Advance) Run(args []string) error {
	var projects []project.Handle
	for _, a := range args {
		h, err := project.Parse(a)
		if err != nil {
			return err
		}
		projects = append(projects, h)
	}

	s, err := c.mainopts.Store()
	if err != nil {
		return err
	}
	var stages []release.Stage
	_, err = s.Update(func(r *release.ReleaseState) (bool, error) {
		stages = nil
		for _, h := range projects {
			st, err := r.Advance(h)
			if err != nil {
				return false, err
			}
			stages = append(stages, st)
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	for i, h := range projects {
		fmt.Fprintf(c.cmd.OutOrStdout(), "%s: %s\n", h, stages[i])
	}
	return nil
}
