package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/mcversion/internal/buildinfo"
	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/middleware"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcversion",
		Short: "Minecraft Java Edition version metadata service",
		Long: `mcversion aggregates Minecraft Java Edition version metadata from the
launcher manifest, the client jar and the Minecraft Wiki, and serves it over HTTP.
It can also watch a running server and announce new versions.`,
		Example: `mcversion serve
mcversion show 1.21.4`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.ConfigureLoggerFromFlags()
			if logger.FlagQuiet && logger.FlagVerboseCount > 0 {
				return middleware.FlagComboError(errs.FlagConflict, "--quiet", "--verbose")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				buildinfo.PrintVersion(cmd.OutOrStdout())
				return
			}
			_ = cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Path to the config file (default ~/.config/mcversion/config.yml)")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (-V, -VV)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing from the logger")
	pf.BoolVar(&logger.FlagJSON, "log-json", false, "Emit logs as JSON lines")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
