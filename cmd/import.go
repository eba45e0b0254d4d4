package cmd

import (
	"fmt"
	"os"

	"github.com/ikasoba/locanote/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>...",
	Short: "Creates notes from markdown checklists.",
	Long: `Creates one note per markdown file.

The title is read from the front matter property ` + "`title`" + `, or from the
first level-one heading. Every checklist line (` + "`- [ ] item`, `- [x] item`" + `)
becomes a todo.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, p := range args {
		title, todos, err := readMarkdownNote(p)
		if err != nil {
			return err
		}

		n, err := a.store.Create(cmd.Context(), title, todos)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as `%s`.\n", p, n.ID)
	}

	return nil
}

func readMarkdownNote(p string) (string, []core.Todo, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", nil, err
	}

	defer f.Close()

	title, todos, err := core.ParseNoteMarkdown(f)
	if err != nil {
		return "", nil, errors.Wrap(err, p)
	}

	return title, todos, nil
}
