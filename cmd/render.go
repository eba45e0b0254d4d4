package cmd

import (
	"fmt"
	"strings"

	"github.com/ikasoba/locanote/core"
)

func renderNote(n core.Note, locale string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n", n.Title)
	fmt.Fprintf(&b, "- id: `%s`\n", n.ID)
	fmt.Fprintf(&b, "- created: %s\n", core.FormatDateTime(n.CreatedAt, locale))
	if n.UpdatedAt != nil {
		fmt.Fprintf(&b, "- updated: %s\n", core.FormatDateTime(*n.UpdatedAt, locale))
	}
	fmt.Fprintf(&b, "- location: %s\n", n.Location)

	if len(n.Todos) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTodos(n.Todos))
	}

	return b.String()
}

func renderTodos(todos []core.Todo) string {
	var b strings.Builder

	for _, t := range todos {
		mark := " "
		if t.Done {
			mark = "x"
		}

		fmt.Fprintf(&b, "- [%s] %s\n", mark, t.Text)
	}

	return b.String()
}

func renderNotes(notes []core.Note, locale string) string {
	if len(notes) == 0 {
		return "No notes.\n"
	}

	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = renderNote(n, locale)
	}

	return strings.Join(parts, "\n")
}

// parseTodoLines reads one todo per line. A leading "[x]" marks it done,
// a leading "[ ]" or "- " is dropped.
func parseTodoLines(s string) []core.Todo {
	todos := []core.Todo{}

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")

		done := false
		switch {
		case strings.HasPrefix(line, "[x]"), strings.HasPrefix(line, "[X]"):
			done = true
			line = line[3:]
		case strings.HasPrefix(line, "[ ]"):
			line = line[3:]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		todos = append(todos, core.Todo{Text: line, Done: done})
	}

	return todos
}
