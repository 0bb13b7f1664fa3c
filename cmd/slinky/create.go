package slinky

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/internal/version"
	"github.com/arthur-debert/slinky/pkg/create"
	"github.com/arthur-debert/slinky/pkg/logging"
)

func newCreateCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create TARGET [ORIGIN]",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "links",
	}
	bindCreate(cmd, opts)
	return cmd
}

// NewLnCmd creates the root command of slinky-ln, which is the create
// command on its own.
func NewLnCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:     "slinky-ln TARGET [ORIGIN]",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Version: version.Short(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	addGlobalFlags(cmd, opts)
	cmd.SetUsageTemplate(MsgUsageTemplate)
	bindCreate(cmd, opts)
	return cmd
}

// bindCreate adds the create flags and action to cmd.
func bindCreate(cmd *cobra.Command, opts *globalOptions) {
	var copts create.Options

	cmd.Args = cobra.RangeArgs(1, 2)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		copts.Target = args[0]
		copts.Origin = rootPath(args, 1)
		copts.DryRun = opts.dryRun

		if err := copts.Validate(); err != nil {
			return err
		}

		s, err := opts.session(cmd, nil)
		if err != nil {
			return err
		}

		result, err := create.New(s.fs).Create(copts)
		if err != nil {
			return err
		}
		return s.printer.Result(result)
	}

	flags := cmd.Flags()
	flags.BoolVarP(&copts.Absolute, "absolute", "b", false, MsgFlagAbsolute)
	flags.BoolVarP(&copts.Relative, "relative", "r", false, MsgFlagRelative)
	flags.BoolVar(&copts.AllowDangling, "allow-dangling", false, MsgFlagAllowDangling)
	flags.BoolVarP(&copts.Hard, "hard", "H", false, MsgFlagHard)
	flags.BoolVarP(&copts.Tree, "tree", "T", false, MsgFlagTree)
	flags.BoolVarP(&copts.Force, "force", "f", false, MsgFlagForce)
	flags.BoolVarP(&copts.Dereference, "dereference", "L", false, MsgFlagDereference)

	cmd.MarkFlagsMutuallyExclusive("absolute", "relative", "allow-dangling")
	for _, rewrite := range []string{"absolute", "relative", "allow-dangling"} {
		cmd.MarkFlagsMutuallyExclusive("hard", rewrite)
		cmd.MarkFlagsMutuallyExclusive("tree", rewrite)
	}
}
