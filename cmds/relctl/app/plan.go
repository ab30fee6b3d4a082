package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/release"
	"github.com/mandelsoft/relplan/pkg/store"
	"github.com/mandelsoft/relplan/pkg/version"
)

type Plan struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
	dryrun   bool
	force    bool
}

func NewPlan(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <options> <project> <version>",
		Short: "plan the release of a project and its dependents",
		Args:  cobra.ExactArgs(2),
	}

	c := &Plan{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	flags.BoolVarP(&c.dryrun, "dry-run", "n", false, "show the plan only")
	flags.BoolVarP(&c.force, "force", "f", false, "replace an unfinished release")
	return cmd
}

func (c *Plan) Run(args []string) error {
	h, err := project.Parse(args[0])
	if err != nil {
		return err
	}
	v, err := version.Parse(args[1])
	if err != nil {
		return err
	}

	_, db, err := c.mainopts.Analyze(c.cmd.Context())
	if err != nil {
		return err
	}
	r, err := release.Plan(h, v, db, analysis.BuildDependentsGraph(db))
	if err != nil {
		return err
	}

	if !c.dryrun && len(r.Phases) > 0 {
		if err := c.save(r); err != nil {
			return err
		}
	}

	if c.output != "" {
		return PrintDocument(c.cmd.OutOrStdout(), c.output, r)
	}
	PrintRelease(c.cmd.OutOrStdout(), r)
	return nil
}

func (c *Plan) save(r *release.ReleaseState) error {
	s, err := c.mainopts.Store()
	if err != nil {
		return err
	}
	old, err := s.Load()
	if err != nil && !errors.Is(err, store.ErrNotExist) {
		if !c.force {
			return err
		}
		log.Warn("replacing unreadable release state", "error", err)
	}
	if old != nil {
		if !old.IsDone() && !c.force {
			return fmt.Errorf("release %s not yet done (use --force to replace it)", old.Codename)
		}
		log.Info("replacing release {{codename}}", "codename", old.Codename)
	}
	if err := s.Delete(); err != nil && !errors.Is(err, store.ErrNotExist) {
		return err
	}
	return s.Save(r)
}
