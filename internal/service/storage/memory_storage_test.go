package storage

import "testing"

func TestMemoryStorageCRUD(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected miss on empty storage")
	}

	s.Set("a", 1)
	s.Set("b", 2)

	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d (%v)", v, ok)
	}
	if s.Count() != 2 {
		t.Fatalf("expected 2 objects, got %d", s.Count())
	}
	if len(s.GetAll()) != 2 || len(s.GetAllValues()) != 2 {
		t.Fatalf("GetAll/GetAllValues out of sync with Count")
	}

	if !s.Delete("a") {
		t.Fatalf("expected delete to report success")
	}
	if s.Delete("a") {
		t.Fatalf("expected second delete to report miss")
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 object after delete, got %d", s.Count())
	}
}

func TestMemoryStorageDirtyTracking(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	s.Set("b", 2)

	dirty := s.GetDirty()
	if len(dirty) != 2 {
		t.Fatalf("expected 2 dirty objects, got %d", len(dirty))
	}

	s.ClearDirty([]string{"a", "b"})
	if len(s.GetDirty()) != 0 {
		t.Fatalf("expected no dirty objects after clear")
	}

	s.Set("a", 3)
	dirty = s.GetDirty()
	if len(dirty) != 1 || dirty["a"] != 3 {
		t.Fatalf("expected only updated object dirty, got %v", dirty)
	}
}

func TestMemoryStorageForEach(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	visited := 0
	s.ForEach(func(key string, value int) bool {
		visited++
		return visited < 2 // stop early
	})
	if visited != 2 {
		t.Fatalf("expected early stop after 2 visits, got %d", visited)
	}
}
