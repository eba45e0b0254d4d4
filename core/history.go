package core

import (
	"encoding/json"
	"time"

	"github.com/cespare/xxhash"
	"github.com/jinzhu/copier"
)

// Snapshot is a deep copy of the whole note list at one point in time.
type Snapshot struct {
	Notes []Note
	Sum   uint64
}

// History is an append-only list of snapshots. Index is -1 while empty.
type History struct {
	entries []Snapshot
	index   int
}

func NewHistory() *History {
	return &History{index: -1}
}

var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				return src.(time.Time), nil
			},
		},
		{
			SrcType: (*time.Time)(nil),
			DstType: (*time.Time)(nil),
			Fn: func(src interface{}) (interface{}, error) {
				t := src.(*time.Time)
				if t == nil {
					return (*time.Time)(nil), nil
				}

				c := *t
				return &c, nil
			},
		},
	},
}

// CloneNotes returns a copy of notes sharing no memory with the input.
// Nil todo lists come back empty.
func CloneNotes(notes []Note) []Note {
	res := make([]Note, 0, len(notes))
	if len(notes) == 0 {
		return res
	}

	if err := copier.CopyWithOption(&res, notes, copyOption); err != nil {
		// copier only fails on converter errors, and ours never return one.
		panic(err)
	}

	for i := range res {
		if res[i].Todos == nil {
			res[i].Todos = []Todo{}
		}
	}

	return res
}

// Digest is the xxhash of the list's JSON form.
func Digest(notes []Note) uint64 {
	data, err := json.Marshal(notes)
	if err != nil {
		return 0
	}

	return xxhash.Sum64(data)
}

// Push appends a copy of notes and points the index at it. Entries past
// the index stay in place, so states left by an undo remain reachable.
func (h *History) Push(notes []Note) {
	clone := CloneNotes(notes)

	h.entries = append(h.entries, Snapshot{
		Notes: clone,
		Sum:   Digest(clone),
	})
	h.index = len(h.entries) - 1
}

// Back moves one step towards the oldest snapshot and returns a copy of it.
func (h *History) Back() ([]Note, bool) {
	if h.index <= 0 {
		return nil, false
	}

	h.index--
	return CloneNotes(h.entries[h.index].Notes), true
}

// Forward moves one step towards the newest snapshot and returns a copy of it.
func (h *History) Forward() ([]Note, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}

	h.index++
	return CloneNotes(h.entries[h.index].Notes), true
}

func (h *History) Index() int {
	return h.index
}

func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns copies of every snapshot, oldest first.
func (h *History) Entries() []Snapshot {
	res := make([]Snapshot, len(h.entries))
	for i, e := range h.entries {
		res[i] = Snapshot{Notes: CloneNotes(e.Notes), Sum: e.Sum}
	}

	return res
}
