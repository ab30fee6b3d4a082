package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/analysis"
)

type List struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewList(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <options>",
		Short: "list the projects of the workspace profile",
	}

	c := &List{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	return cmd
}

func (c *List) Run(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("no arguments expected")
	}
	_, db, err := c.mainopts.Analyze(c.cmd.Context())
	if err != nil {
		return err
	}

	var infos []*analysis.ProjectInfo
	var rows [][]string
	for _, p := range db.Projects() {
		info := db.About(p)
		infos = append(infos, info)
		rows = append(rows, []string{p.String(), string(info.Language), info.Version.String()})
	}

	if c.output != "" {
		return PrintDocument(c.cmd.OutOrStdout(), c.output, infos)
	}
	PrintTable(c.cmd.OutOrStdout(), []string{"PROJECT", "LANGUAGE", "VERSION"}, rows)
	return nil
}
