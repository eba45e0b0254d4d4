package core

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ID identifies a note. New notes get a random UUID; slots written by
// older builds stored millisecond timestamps, which decode as their
// decimal text.
type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}

		*id = ID(n.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*id = ID(s)
	return nil
}

type Todo struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Note struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Todos     []Todo     `json:"todos"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Location  string     `json:"location"`
}

// NotePatch holds the fields Update merges over an existing note. Nil
// fields are left untouched.
type NotePatch struct {
	Title    *string
	Todos    *[]Todo
	Location *string
}

func (p NotePatch) apply(n *Note) {
	if p.Title != nil {
		n.Title = SanitizeTitle(*p.Title)
	}

	if p.Todos != nil {
		n.Todos = append([]Todo{}, (*p.Todos)...)
	}

	if p.Location != nil {
		n.Location = *p.Location
	}
}
