package slinky

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/shellexec"
	"github.com/arthur-debert/slinky/pkg/transform"
	"github.com/arthur-debert/slinky/pkg/types"
	"github.com/arthur-debert/slinky/pkg/walker"
)

// walkOptions holds the for-each flags that select links.
type walkOptions struct {
	onlyDangling bool
	onlyAttached bool
	onlyAbsolute bool
	onlyRelative bool
	filterOrigin string
	filterTarget string
	maxDepth     int
	exclude      []string
	status       bool
}

// overrides maps explicitly set walk flags onto configuration keys.
func (w *walkOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	if cmd.Flags().Changed("max-depth") {
		o["walk.max_depth"] = w.maxDepth
	}
	if cmd.Flags().Changed("status") {
		o["output.status"] = w.status
	}
	return o
}

func newForEachCmd(opts *globalOptions) *cobra.Command {
	wopts := &walkOptions{}

	cmd := &cobra.Command{
		Use:     "for-each [PATH]",
		Short:   MsgForEachShort,
		Long:    MsgForEachLong,
		Example: MsgForEachExample,
		GroupID: "links",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd, wopts.overrides(cmd))
			if err != nil {
				return err
			}
			return s.list(rootPath(args, 0), wopts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&wopts.onlyDangling, "only-dangling", "x", false, MsgFlagOnlyDangling)
	flags.BoolVarP(&wopts.onlyAttached, "only-attached", "a", false, MsgFlagOnlyAttached)
	flags.BoolVarP(&wopts.onlyAbsolute, "only-absolute", "b", false, MsgFlagOnlyAbsolute)
	flags.BoolVarP(&wopts.onlyRelative, "only-relative", "r", false, MsgFlagOnlyRelative)
	flags.StringVarP(&wopts.filterOrigin, "filter-origin", "o", "", MsgFlagFilterOrigin)
	flags.StringVarP(&wopts.filterTarget, "filter-target", "t", "", MsgFlagFilterTarget)
	flags.IntVarP(&wopts.maxDepth, "max-depth", "d", walker.Unbounded, MsgFlagMaxDepth)
	flags.StringArrayVarP(&wopts.exclude, "exclude", "e", nil, MsgFlagExclude)

	cmd.AddCommand(newListCmd(opts, wopts))

	// Commands that rewrite one link at a time.
	simple := []struct {
		use   string
		short string
		op    func(*transform.Engine) transform.Operation
	}{
		{transform.OpTidy, MsgTidyShort, func(e *transform.Engine) transform.Operation { return e.Tidy }},
		{transform.OpToAbsolute, MsgToAbsoluteShort, func(e *transform.Engine) transform.Operation { return e.ToAbsolute }},
		{transform.OpToRelative, MsgToRelativeShort, func(e *transform.Engine) transform.Operation { return e.ToRelative }},
		{transform.OpToHardlink, MsgToHardlinkShort, func(e *transform.Engine) transform.Operation { return e.ToHardlink }},
		{transform.OpToHardlinkTree, MsgToHardlinkTreeShort, func(e *transform.Engine) transform.Operation { return e.ToTree(types.LinkHard) }},
		{transform.OpToTree, MsgToTreeShort, func(e *transform.Engine) transform.Operation { return e.ToTree(types.LinkSymbolic) }},
		{transform.OpReplaceWithTarget, MsgReplaceWithTargetShort, func(e *transform.Engine) transform.Operation { return e.ReplaceWithTarget }},
		{transform.OpDelete, MsgDeleteShort, func(e *transform.Engine) transform.Operation { return e.Delete }},
	}
	for _, sc := range simple {
		cmd.AddCommand(&cobra.Command{
			Use:   sc.use + " [PATH]",
			Short: sc.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := opts.session(cmd, wopts.overrides(cmd))
				if err != nil {
					return err
				}
				return s.apply(rootPath(args, 0), wopts, sc.use, sc.op(s.engine()))
			},
		})
	}

	cmd.AddCommand(newEditTargetCmd(opts, wopts))
	cmd.AddCommand(newExecCmd(opts, wopts))

	return cmd
}

func newListCmd(opts *globalOptions, wopts *walkOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [PATH]",
		Aliases: []string{"ls", "print"},
		Short:   MsgListShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd, wopts.overrides(cmd))
			if err != nil {
				return err
			}
			return s.list(rootPath(args, 0), wopts)
		},
	}
	cmd.Flags().BoolVarP(&wopts.status, "status", "s", false, MsgFlagStatus)
	return cmd
}

func newEditTargetCmd(opts *globalOptions, wopts *walkOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "edit-target PATTERN REPLACE [PATH]",
		Short: MsgEditTargetShort,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := transform.NewEdit(args[0], args[1], all)
			if err != nil {
				return err
			}
			s, err := opts.session(cmd, wopts.overrides(cmd))
			if err != nil {
				return err
			}
			return s.apply(rootPath(args, 2), wopts, transform.OpEditTarget, s.engine().EditTarget(ed))
		},
	}
	cmd.Flags().BoolVarP(&all, "replace-all", "g", false, MsgFlagReplaceAll)
	return cmd
}

func newExecCmd(opts *globalOptions, wopts *walkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec CMD [PATH]",
		Short: MsgExecShort,
		Long:  MsgExecLong,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd, wopts.overrides(cmd))
			if err != nil {
				return err
			}
			shell := shellexec.ResolveShell(s.cfg.Exec.Shell, os.Getenv("SHELL"))
			runner := shellexec.New(shell, args[0], opts.dryRun)
			runner.Stdout = cmd.OutOrStdout()
			runner.Stderr = cmd.ErrOrStderr()
			return s.apply(rootPath(args, 1), wopts, shellexec.Op, runner.Run)
		},
	}
}

func (s *session) engine() *transform.Engine {
	return transform.New(s.fs, transform.Options{
		DryRun:  s.opts.dryRun,
		Verbose: s.opts.verbosity > 1,
	})
}

// walk validates the root and filter before any link is visited, so setup
// errors stop the run while per-link errors do not.
func (s *session) walk(root string, wopts *walkOptions) (*walker.Walker, error) {
	filter, err := walker.NewFilter(walker.FilterSpec{
		OnlyDangling:  wopts.onlyDangling,
		OnlyAttached:  wopts.onlyAttached,
		OnlyAbsolute:  wopts.onlyAbsolute,
		OnlyRelative:  wopts.onlyRelative,
		OriginPattern: wopts.filterOrigin,
		TargetPattern: wopts.filterTarget,
		Exclude:       append(append([]string{}, s.cfg.Walk.Exclude...), wopts.exclude...),
	})
	if err != nil {
		return nil, err
	}
	if err := walker.CheckRoot(s.fs, root); err != nil {
		return nil, err
	}
	return walker.New(s.fs, walker.Options{MaxDepth: s.cfg.Walk.MaxDepth, Filter: filter}), nil
}

func (s *session) list(root string, wopts *walkOptions) error {
	w, err := s.walk(root, wopts)
	if err != nil {
		return err
	}
	for entry, err := range w.Walk(root) {
		if err != nil {
			if perr := s.printer.Result(types.Failed("list", entry, err)); perr != nil {
				return perr
			}
			continue
		}
		if err := s.printer.Entry(entry); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) apply(root string, wopts *walkOptions, name string, op transform.Operation) error {
	w, err := s.walk(root, wopts)
	if err != nil {
		return err
	}
	var printErr error
	transform.Run(w.Walk(root), name, op, func(r types.Result) {
		if err := s.printer.Result(r); err != nil && printErr == nil {
			printErr = err
		}
	})
	return printErr
}
