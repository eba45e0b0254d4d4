package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "locanote",
	Short:         "Notes with todos, undo history and the place they were written.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file.")
	rootCmd.PersistentFlags().String("home", "", "Specify data directory. Defaults to $LOCANOTE_HOME or ~/.locanote.")
	rootCmd.PersistentFlags().String("locale", "", "Locale used to display dates.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
