package cmd

import (
	"fmt"
	"strings"

	"github.com/ikasoba/locanote/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Updates the title, todos or location of a note.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("title", "", "New title.")
	editCmd.Flags().StringArrayP("todo", "t", nil, "Replace the todos, may be repeated.")
	editCmd.Flags().IntSlice("check", nil, "Mark the todos at these 1-based positions done.")
	editCmd.Flags().IntSlice("uncheck", nil, "Mark the todos at these 1-based positions not done.")
	editCmd.Flags().String("location", "", "Override the location.")
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id := core.ID(args[0])
	flags := cmd.Flags()

	current, err := a.store.Get(id)
	if err != nil {
		return err
	}

	var patch core.NotePatch

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch.Title = &title
	}

	if flags.Changed("location") {
		location, _ := flags.GetString("location")
		patch.Location = &location
	}

	todos := current.Todos
	touched := false

	if flags.Changed("todo") {
		items, _ := flags.GetStringArray("todo")
		todos = parseTodoLines(strings.Join(items, "\n"))
		touched = true
	}

	for _, flag := range []string{"check", "uncheck"} {
		if !flags.Changed(flag) {
			continue
		}

		positions, _ := flags.GetIntSlice(flag)
		for _, p := range positions {
			if p < 1 || p > len(todos) {
				return errors.Errorf("--%s %d: note has %d todos", flag, p, len(todos))
			}

			todos[p-1].Done = flag == "check"
		}
		touched = true
	}

	if touched {
		patch.Todos = &todos
	}

	found, err := a.store.Update(id, patch)
	if err != nil {
		return err
	}

	if !found {
		return errors.Wrapf(core.ErrNotFound, "id %s", id)
	}

	n, err := a.store.Get(id)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderNote(n, a.cfg.Locale))

	return nil
}
