package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/utils"
)

type Graph struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewGraph(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <options> {<project>}",
		Short: "show the dependents of projects",
	}

	c := &Graph{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	return cmd
}

func (c *Graph) Run(args []string) error {
	_, db, err := c.mainopts.Analyze(c.cmd.Context())
	if err != nil {
		return err
	}
	graph := analysis.BuildDependentsGraph(db)

	projects := db.Projects()
	if len(args) > 0 {
		projects = nil
		for _, a := range args {
			h, err := project.Parse(a)
			if err != nil {
				return err
			}
			if !graph.Has(h) {
				return fmt.Errorf("unknown project %q", a)
			}
			projects = append(projects, h)
		}
	}

	doc := map[string][]string{}
	var rows [][]string
	for _, p := range projects {
		dependents := utils.TransformSlice(graph.DependentsOf(p), project.Handle.String)
		doc[p.String()] = dependents
		rows = append(rows, []string{p.String(), strings.Join(dependents, ", ")})
	}

	if c.output != "" {
		return PrintDocument(c.cmd.OutOrStdout(), c.output, doc)
	}
	PrintTable(c.cmd.OutOrStdout(), []string{"PROJECT", "DEPENDENTS"}, rows)
	return nil
}
