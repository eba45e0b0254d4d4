package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("note not found")

// Store owns the live note list and its undo history. Every mutation
// pushes a snapshot and rewrites the slot.
type Store struct {
	mu      sync.Mutex
	notes   []Note
	history *History

	slot    Slot
	locator LocationResolver
	logger  *zap.Logger
	now     func() time.Time
	newID   func() ID
}

type Option func(*Store)

func WithLocator(l LocationResolver) Option {
	return func(s *Store) { s.locator = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() ID) Option {
	return func(s *Store) { s.newID = gen }
}

type unavailableLocator struct{}

func (unavailableLocator) Resolve(ctx context.Context) string {
	return LocationUnavailable
}

// Open builds a store over slot and restores whatever the slot holds.
// History always starts empty.
func Open(slot Slot, opts ...Option) (*Store, error) {
	s := &Store{
		notes:   []Note{},
		history: NewHistory(),
		slot:    slot,
		locator: unavailableLocator{},
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   NewID,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.restore(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.slot.Close()
}

// Create resolves the current location, then appends a new note. The
// lookup runs without the lock held, so concurrent creates interleave.
func (s *Store) Create(ctx context.Context, title string, todos []Todo) (Note, error) {
	location := s.locator.Resolve(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{
		ID:        s.newID(),
		Title:     SanitizeTitle(title),
		Todos:     append([]Todo{}, todos...),
		CreatedAt: s.now(),
		Location:  location,
	}

	s.notes = append(s.notes, n)

	s.logger.Debug("note created", zap.String(FieldNoteID, string(n.ID)))

	return CloneNotes([]Note{n})[0], s.commit("create")
}

// Update merges patch over the note with the given id. It reports false
// and changes nothing when no such note exists.
func (s *Store) Update(id ID, patch NotePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	n := CloneNotes(s.notes[i : i+1])[0]
	patch.apply(&n)

	now := s.now()
	n.UpdatedAt = &now

	s.notes[i] = n

	return true, s.commit("update")
}

// Remove filters the note with the given id out of the list and reports
// whether one was there. The result is snapshotted and persisted either
// way, so an unknown id leaves a duplicate history entry.
func (s *Store) Remove(id ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}

	found := len(notes) < len(s.notes)
	s.notes = notes

	return found, s.commit("remove")
}

// Clear empties the list. It always records a snapshot.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = []Note{}

	return s.commit("clear")
}

// Undo steps back one snapshot. It reports false at the oldest snapshot.
func (s *Store) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, ok := s.history.Back()
	if !ok {
		return false, nil
	}

	s.notes = notes

	s.logger.Debug("undo", zap.Int(FieldIndex, s.history.Index()))

	return true, s.persist()
}

// Redo steps forward one snapshot. It reports false at the newest snapshot.
func (s *Store) Redo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, ok := s.history.Forward()
	if !ok {
		return false, nil
	}

	s.notes = notes

	s.logger.Debug("redo", zap.Int(FieldIndex, s.history.Index()))

	return true, s.persist()
}

func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return CloneNotes(s.notes)
}

func (s *Store) Get(id ID) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}

	return CloneNotes(s.notes[i : i+1])[0], nil
}

func (s *Store) History() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Entries()
}

func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Index()
}

func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Index() > 0
}

func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Index() < s.history.Len()-1
}

func (s *Store) indexOf(id ID) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}

	return -1
}

// commit must be called with mu held.
func (s *Store) commit(action string) error {
	s.history.Push(s.notes)

	s.logger.Debug("snapshot",
		zap.String(FieldAction, action),
		zap.Int(FieldIndex, s.history.Index()),
		zap.Int(FieldCount, len(s.notes)),
	)

	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return errors.Wrap(err, "encode notes")
	}

	return s.slot.Save(data)
}

func (s *Store) restore() error {
	data, err := s.slot.Load()
	if err != nil {
		return err
	}

	if data == nil {
		return nil
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return errors.Wrap(err, "decode notes")
	}

	if notes == nil {
		notes = []Note{}
	}

	s.notes = notes

	s.logger.Debug("notes restored", zap.Int(FieldCount, len(notes)))

	return nil
}
