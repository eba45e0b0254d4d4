package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikasoba/locanote/core"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts as an MCP server.",
	Long: `Starts as an MCP server on stdio.

The server keeps one store open for the whole session, so undo and redo
walk back and forth through every change made during it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

const todosDescription = `One todo per line. Prefix a line with "[x]" to mark it done.`

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	n := NotesMCP{
		store:  a.store,
		locale: a.cfg.Locale,
		logger: a.logger.Named("mcp"),
	}

	s := server.NewMCPServer(
		"Locanote",
		Version,
		server.WithToolCapabilities(false),
	)

	n.register(s)

	if err := server.ServeStdio(s); err != nil {
		return errors.Wrap(err, "server error")
	}

	return nil
}

type NotesMCP struct {
	store  *core.Store
	locale string
	logger *zap.Logger
}

func (n *NotesMCP) register(s *server.MCPServer) {
	{
		tool := mcp.NewTool("create_note",
			mcp.WithDescription("Creates a note. The note is tagged with the place it was written."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Title of the note."),
			),
			mcp.WithString("todos",
				mcp.Description(todosDescription),
			),
		)

		s.AddTool(tool, n.createHandler)
	}

	{
		tool := mcp.NewTool("update_note",
			mcp.WithDescription("Updates a note. Only the given properties are changed; `todos` replaces the whole list."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Identifier of the note."),
			),
			mcp.WithString("title",
				mcp.Description("New title."),
			),
			mcp.WithString("todos",
				mcp.Description(todosDescription),
			),
			mcp.WithString("location",
				mcp.Description("New location."),
			),
		)

		s.AddTool(tool, n.updateHandler)
	}

	{
		tool := mcp.NewTool("delete_note",
			mcp.WithDescription("Deletes a note."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Identifier of the note."),
			),
		)

		s.AddTool(tool, n.deleteHandler)
	}

	s.AddTool(mcp.NewTool("clear_notes",
		mcp.WithDescription("Deletes every note. Can be undone within this session."),
	), n.clearHandler)

	s.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("Lists every note with its todos, dates and location."),
	), n.listHandler)

	s.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Reverts the notes to the state before the last change."),
	), n.undoHandler)

	s.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Re-applies the last undone change."),
	), n.redoHandler)

	s.AddTool(mcp.NewTool("history",
		mcp.WithDescription("Shows the undo history of this session."),
	), n.historyHandler)
}

func (n *NotesMCP) fail(tool string, err error) (*mcp.CallToolResult, error) {
	n.logger.Warn("tool failed", zap.String(core.FieldAction, tool), zap.Error(err))

	return mcp.NewToolResultError(err.Error()), nil
}

func (n *NotesMCP) createHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	todos := parseTodoLines(req.GetString("todos", ""))

	if core.SanitizeTitle(title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	note, err := n.store.Create(ctx, title, todos)
	if err != nil {
		return n.fail("create_note", err)
	}

	return mcp.NewToolResultText("Note has been created.\n\n" + renderNote(note, n.locale)), nil
}

func (n *NotesMCP) updateHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(req.GetString("id", ""))
	args := req.GetArguments()

	var patch core.NotePatch

	if v, ok := args["title"].(string); ok {
		patch.Title = &v
	}

	if v, ok := args["todos"].(string); ok {
		todos := parseTodoLines(v)
		patch.Todos = &todos
	}

	if v, ok := args["location"].(string); ok {
		patch.Location = &v
	}

	found, err := n.store.Update(id, patch)
	if err != nil {
		return n.fail("update_note", err)
	}

	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("No note with id `%s`.", id)), nil
	}

	note, err := n.store.Get(id)
	if err != nil {
		return n.fail("update_note", err)
	}

	return mcp.NewToolResultText("Note has been updated.\n\n" + renderNote(note, n.locale)), nil
}

func (n *NotesMCP) deleteHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(req.GetString("id", ""))

	found, err := n.store.Remove(id)
	if err != nil {
		return n.fail("delete_note", err)
	}

	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("No note with id `%s`.", id)), nil
	}

	return mcp.NewToolResultText("Note has been deleted."), nil
}

func (n *NotesMCP) clearHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := n.store.Clear(); err != nil {
		return n.fail("clear_notes", err)
	}

	return mcp.NewToolResultText("All notes have been deleted."), nil
}

func (n *NotesMCP) listHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes := n.store.Notes()

	result := fmt.Sprintf("# notes (results: %d)\n\n", len(notes)) + renderNotes(notes, n.locale)

	return mcp.NewToolResultText(result), nil
}

func (n *NotesMCP) undoHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moved, err := n.store.Undo()
	if err != nil {
		return n.fail("undo", err)
	}

	if !moved {
		return mcp.NewToolResultText("Nothing to undo."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Undone. %d notes now.", len(n.store.Notes()))), nil
}

func (n *NotesMCP) redoHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moved, err := n.store.Redo()
	if err != nil {
		return n.fail("redo", err)
	}

	if !moved {
		return mcp.NewToolResultText("Nothing to redo."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Redone. %d notes now.", len(n.store.Notes()))), nil
}

func (n *NotesMCP) historyHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := n.store.History()
	current := n.store.CurrentIndex()

	var b strings.Builder
	fmt.Fprintf(&b, "# history (entries: %d) (current: %d)\n", len(entries), current)

	for i, e := range entries {
		marker := " "
		if i == current {
			marker = ">"
		}

		fmt.Fprintf(&b, "%s %d. `%016x` notes: %d\n", marker, i, e.Sum, len(e.Notes))
	}

	return mcp.NewToolResultText(b.String()), nil
}
