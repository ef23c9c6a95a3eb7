package main

import (
	"github.com/arthur-debert/cuepine/internal/version"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

type rootOptions struct {
	uninstall  bool
	dryRun     bool
	template   bool
	explain    bool
	strictPre  bool
	noSublevel bool
	checkOnly  bool
	configName string
	output     string
	configFile string
	verbosity  int
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "cuepine [dir]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(MsgVersionTemplate)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.uninstall, "uninstall", "u", false, MsgFlagUninstall)
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, MsgFlagDryRun)
	flags.BoolVarP(&opts.template, "template", "t", false, MsgFlagTemplate)
	flags.BoolVar(&opts.explain, "explain-config", false, MsgFlagExplain)
	flags.StringVar(&opts.configName, "config-name", "", MsgFlagConfigName)
	flags.BoolVar(&opts.strictPre, "strict-pre", false, MsgFlagStrictPre)
	flags.BoolVar(&opts.noSublevel, "no-sublevel", false, MsgFlagNoSublevel)
	flags.BoolVarP(&opts.checkOnly, "check-dependencies", "c", false, MsgFlagCheckDeps)
	flags.StringVar(&opts.output, "output", "", MsgFlagOutput)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	// Defined here so cobra does not add its own; -v is taken by verbosity.
	flags.BoolP("version", "V", false, MsgFlagVersion)

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("config-name", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"install.json", "install.yaml", "install.yml", "install.toml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "CUEPINE",
				Section: "1",
				Source:  "cuepine " + version.Version,
				Manual:  "cuepine manual",
			}
			if dir != "" {
				return doc.GenManTree(cmd.Root(), header, dir)
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}
