package cmd

import (
	"fmt"

	"github.com/ikasoba/locanote/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Deletes notes.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRm,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes every note.",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clearCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, arg := range args {
		found, err := a.store.Remove(core.ID(arg))
		if err != nil {
			return err
		}

		if !found {
			return errors.Wrapf(core.ErrNotFound, "id %s", arg)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", arg)
	}

	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "All notes deleted.")

	return nil
}
