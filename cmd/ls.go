package cmd

import (
	"fmt"

	"github.com/ikasoba/locanote/core"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Lists notes.",
	Args:    cobra.NoArgs,
	RunE:    runLs,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Shows one note.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprint(cmd.OutOrStdout(), renderNotes(a.store.Notes(), a.cfg.Locale))

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.store.Get(core.ID(args[0]))
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderNote(n, a.cfg.Locale))

	return nil
}
