package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Creates a note, tagged with the current location.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringArrayP("todo", "t", nil, `Todo item, may be repeated. Prefix with "[x]" to mark it done.`)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := cmd.Flags().GetStringArray("todo")
	if err != nil {
		return err
	}

	n, err := a.store.Create(cmd.Context(), strings.Join(args, " "), parseTodoLines(strings.Join(items, "\n")))
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderNote(n, a.cfg.Locale))

	return nil
}
