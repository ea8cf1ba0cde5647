package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-browse/cmd"
	"github.com/mattsolo1/grove-browse/cmd/config"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "grove-browse",
		Short: "A history-tracked browser for hierarchical data stores",
		Long: `grove-browse navigates hierarchical data stores - directory trees,
structured documents and SQLite databases - with browser-style history and a
content adapter that picks a representation for whatever it finds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.AddCommand(
		cmd.NewBrowseCmd(logger),
		cmd.NewLsCmd(logger),
		cmd.NewShowCmd(logger),
		cmd.NewVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
