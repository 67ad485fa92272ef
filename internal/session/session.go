// Package session owns the in-memory map of conversation threads, their
// ordering, and their persistence through the Store.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/chatmodel"
	"github.com/keagud/gptty/internal/logger"
	"github.com/keagud/gptty/internal/store"
	"github.com/keagud/gptty/internal/streamengine"
)

// Session maps thread identifiers to Threads and owns the Store handle
// and Stream Engine used to mutate and persist them.
type Session struct {
	Threads map[uuid.UUID]*chatmodel.Thread

	store  *store.Store
	engine *streamengine.Engine
	log    *logger.Logger
}

// New constructs a Session backed by st and engine, loading every
// persisted thread into memory.
func New(st *store.Store, engine *streamengine.Engine, log *logger.Logger) (*Session, error) {
	s := &Session{store: st, engine: engine, log: log}
	if err := s.LoadThreads(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadThreads (re)populates Threads from the Store.
func (s *Session) LoadThreads() error {
	threads, err := s.store.LoadAll()
	if err != nil {
		return err
	}

	s.Threads = make(map[uuid.UUID]*chatmodel.Thread, len(threads))
	for _, t := range threads {
		s.Threads[t.ID] = t
	}

	return nil
}

// NewThread allocates a fresh thread identifier, seeds it with a single
// System message carrying persona's prompt text, and stores it.
func (s *Session) NewThread(persona chatmodel.Prompt) (uuid.UUID, error) {
	id := uuid.New()

	seed := chatmodel.NewMessage(chatmodel.RoleSystem, persona.Prompt, time.Now().UTC())
	thread := chatmodel.NewThread([]*chatmodel.Message{seed}, persona.Model, id, persona)

	if _, exists := s.Threads[id]; exists {
		return uuid.Nil, fmt.Errorf("gptty: generated thread id was already present: %s", id)
	}
	s.Threads[id] = thread

	return id, nil
}

// ThreadByID returns the thread with the given identifier, if loaded.
func (s *Session) ThreadByID(id uuid.UUID) (*chatmodel.Thread, bool) {
	t, ok := s.Threads[id]
	return t, ok
}

// DeleteThread removes a thread from memory and cascades the deletion to
// the Store. It reports whether the thread existed.
func (s *Session) DeleteThread(id uuid.UUID) (bool, error) {
	if _, ok := s.Threads[id]; !ok {
		return false, nil
	}
	delete(s.Threads, id)
	return s.store.Delete(id)
}

// OrderedThreads returns every non-empty thread sorted ascending by its
// first non-system message's timestamp -- the stable order shown to users.
func (s *Session) OrderedThreads() []*chatmodel.Thread {
	ordered := make([]*chatmodel.Thread, 0, len(s.Threads))
	for _, t := range s.Threads {
		if len(t.NonSysMessages()) > 0 {
			ordered = append(ordered, t)
		}
	}

	sort.Slice(ordered, func(i, j int) bool {
		ti, _ := ordered[i].InitTime()
		tj, _ := ordered[j].InitTime()
		return ti.Before(tj)
	})

	return ordered
}

// SaveAll persists every in-memory thread.
func (s *Session) SaveAll() error {
	for _, t := range s.Threads {
		if err := s.store.Save(t); err != nil {
			return err
		}
	}
	return nil
}

// Flush saves every in-memory thread before exit. It panics on failure:
// the process is already exiting, so there is nothing else useful to do
// with the error.
func (s *Session) Flush() {
	if err := s.SaveAll(); err != nil {
		panic(fmt.Sprintf("gptty: failed to save session on exit: %v", err))
	}
}
