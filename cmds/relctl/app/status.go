package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

type Status struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewStatus(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <options>",
		Short: "show the progress of the actual release",
	}

	c := &Status{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	return cmd
}

func (c *Status) Run(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("no arguments expected")
	}
	s, err := c.mainopts.Store()
	if err != nil {
		return err
	}
	r, err := s.Load()
	if err != nil {
		return err
	}
	if c.output != "" {
		return PrintDocument(c.cmd.OutOrStdout(), c.output, r)
	}
	PrintRelease(c.cmd.OutOrStdout(), r)
	return nil
}
