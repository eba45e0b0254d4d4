package core

// Log field names shared by core and cmd.
const (
	FieldAction   = "action"
	FieldNoteID   = "noteId"
	FieldCount    = "count"
	FieldIndex    = "index"
	FieldLocation = "location"
	FieldURL      = "url"
	FieldStatus   = "status"
)
