package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/keagud/gptty/internal/chatmodel"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gptty.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id := uuid.New()
	th := chatmodel.NewThread(nil, chatmodel.ModelGPT4, id, chatmodel.DefaultPrompt())
	th.AddMessage(chatmodel.NewMessage(chatmodel.RoleSystem, "You are a helpful assistant", time.Now()))
	th.AddMessage(chatmodel.NewMessage(chatmodel.RoleUser, "hello", time.Now().Add(time.Millisecond)))
	th.SetTitle("Greeting")

	if err := s.Save(th); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Messages) != 2 {
		t.Fatalf("loaded %d messages, want 2", len(loaded.Messages))
	}
	if loaded.Title == nil || *loaded.Title != "Greeting" {
		t.Errorf("loaded title = %v, want Greeting", loaded.Title)
	}
	if loaded.Messages[1].Content != "hello" {
		t.Errorf("loaded second message content = %q, want hello", loaded.Messages[1].Content)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	id := uuid.New()
	th := chatmodel.NewThread(nil, chatmodel.ModelGPT4, id, chatmodel.DefaultPrompt())
	th.AddMessage(chatmodel.NewMessage(chatmodel.RoleUser, "one", time.Now()))
	th.AddMessage(chatmodel.NewMessage(chatmodel.RoleAssistant, "two", time.Now().Add(time.Millisecond)))

	if err := s.Save(th); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(th); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("loaded %d messages after duplicate save, want 2", len(loaded.Messages))
	}
}

func TestDeleteRemovesThreadAndChildren(t *testing.T) {
	s := openTestStore(t)

	id := uuid.New()
	th := chatmodel.NewThread(nil, chatmodel.ModelGPT4, id, chatmodel.DefaultPrompt())
	th.AddMessage(chatmodel.NewMessage(chatmodel.RoleUser, "hi", time.Now()))
	th.SetTitle("T")
	th.Summaries = []chatmodel.Summary{{StartIndex: 0, EndIndex: 1, Content: "s"}}

	if err := s.Save(th); err != nil {
		t.Fatalf("Save: %v", err)
	}

	existed, err := s.Delete(id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Error("Delete reported the thread did not exist")
	}

	if _, err := s.Load(id); err == nil {
		t.Error("expected Load to fail after Delete")
	}

	againExisted, err := s.Delete(id)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if againExisted {
		t.Error("second Delete should report the thread no longer existed")
	}
}

func TestLoadAllReturnsEverySavedThread(t *testing.T) {
	s := openTestStore(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id := uuid.New()
		ids = append(ids, id)
		th := chatmodel.NewThread(nil, chatmodel.ModelGPT4, id, chatmodel.DefaultPrompt())
		th.AddMessage(chatmodel.NewMessage(chatmodel.RoleUser, "msg", time.Now()))
		if err := s.Save(th); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != len(ids) {
		t.Fatalf("LoadAll returned %d threads, want %d", len(all), len(ids))
	}
}
