package app

import (
	"context"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/config"
	"github.com/mandelsoft/relplan/pkg/ctxutil"
	"github.com/mandelsoft/relplan/pkg/store"
	"github.com/mandelsoft/relplan/pkg/utils"
	"github.com/mandelsoft/relplan/pkg/workspace"
)

type Options struct {
	fs       vfs.FileSystem
	timeout  time.Duration
	settings *config.Settings
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	maincmd := &cobra.Command{
		Use:   "relctl <options> <cmd> <args>",
		Short: "plan and track phased releases of a multi-project workspace",
		Long: `
This command analyzes the projects of a workspace, plans the release
of a project together with all dependent projects and tracks the
progress of the release phase by phase.
`,
		SilenceUsage:      true,
		TraverseChildren:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return opts.Complete(cmd) },
	}

	flags := maincmd.PersistentFlags()
	config.AddFlags(flags)
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "timeout for the workspace analysis")

	maincmd.AddCommand(NewList(opts))
	maincmd.AddCommand(NewGraph(opts))
	maincmd.AddCommand(NewRelease(opts))
	return maincmd
}

// Complete resolves the settings from config files, environment
// and flags.
func (o *Options) Complete(cmd *cobra.Command) error {
	dir, err := cmd.Flags().GetString(config.KEY_WORKSPACE)
	if err != nil {
		return err
	}
	cfg, err := config.GetConfig(dir, o.fs)
	if err != nil {
		return err
	}
	o.settings, err = config.Resolve(cfg, cmd.Flags())
	if err != nil {
		return err
	}
	return ConfigureLogging(o.settings.LogLevel)
}

func (o *Options) Workspace() (*workspace.Workspace, error) {
	return workspace.New(o.settings.Workspace, o.fs)
}

func (o *Options) Store() (*store.Store, error) {
	w, err := o.Workspace()
	if err != nil {
		return nil, err
	}
	return store.ForWorkspace(w)
}

// Analyze analyzes the projects of the configured profile.
func (o *Options) Analyze(ctx context.Context) (*workspace.Workspace, *analysis.MemoryDatabase, error) {
	w, err := o.Workspace()
	if err != nil {
		return nil, nil, err
	}
	projects, err := w.Profile(o.settings.Profile)
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.TimeoutContext(ctx, o.timeout)
	defer ctxutil.Cancel(ctx)

	db, err := analysis.Analyze(ctx, w, projects, o.settings.Jobs)
	if err != nil {
		return nil, nil, err
	}
	return w, db, nil
}
