package slinky

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/internal/version"
	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/output"
	"github.com/arthur-debert/slinky/pkg/types"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	dryRun     bool
	color      string
	json       bool
	configPath string
}

// session is what a command needs once flags are parsed: the effective
// configuration, a printer bound to the command's writers and the
// filesystem to act on.
type session struct {
	opts    *globalOptions
	cfg     *config.Config
	printer *output.Printer
	fs      types.FS
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "slinky [PATH]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Short(),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd, nil)
			if err != nil {
				return err
			}
			return s.list(rootPath(args, 0), &walkOptions{})
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	addGlobalFlags(rootCmd, opts)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddGroup(&cobra.Group{ID: "links", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newForEachCmd(opts))
	rootCmd.AddCommand(newCreateCmd(opts))
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command, opts *globalOptions) {
	flags := cmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	flags.StringVar(&opts.color, "color", config.ColorAuto, MsgFlagColor)
	flags.BoolVar(&opts.json, "json", false, MsgFlagJSON)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)

	_ = cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cobra.ShellCompDirectiveNoFileComp))
}

// session loads the configuration and builds the printer. Only flags the
// user actually set override the configuration; extra carries overrides
// owned by the calling command.
func (o *globalOptions) session(cmd *cobra.Command, extra map[string]interface{}) (*session, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("color") {
		overrides["output.color"] = o.color
	}
	if cmd.Flags().Changed("json") {
		format := config.FormatText
		if o.json {
			format = config.FormatJSON
		}
		overrides["output.format"] = format
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{Path: o.configPath, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	printer := output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Options{
		Format:  cfg.Output.Format,
		Color:   cfg.Output.Color,
		Verbose: o.verbosity > 0,
		Status:  cfg.Output.Status,
	})

	return &session{
		opts:    o,
		cfg:     cfg,
		printer: printer,
		fs:      filesystem.NewOS(),
	}, nil
}

// rootPath returns args[i], or "." when it was not given.
func rootPath(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "."
}
