package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/store"
)

type Abort struct {
	cmd *cobra.Command

	mainopts *Options
}

func NewAbort(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abort",
		Short: "discard the actual release",
		Args:  cobra.NoArgs,
	}

	c := &Abort{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	return cmd
}

func (c *Abort) Run(args []string) error {
	s, err := c.mainopts.Store()
	if err != nil {
		return err
	}
	name := "<unreadable>"
	r, err := s.Load()
	switch {
	case errors.Is(err, store.ErrNotExist):
		return err
	case err != nil:
		log.Warn("discarding unreadable release state", "error", err)
	default:
		name = r.Codename
	}
	if err := s.Delete(); err != nil {
		return err
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "release %s aborted\n", name)
	return nil
}
