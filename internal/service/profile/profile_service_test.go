package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"ninjamap/internal/model"
	"ninjamap/internal/service/storage"
)

func newTestService() *ProfileService {
	return NewProfileService(storage.NewMemoryStorage[string, *model.Profile]())
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService()

	p := svc.Create(&model.Profile{
		Username: "adaeze",
		Email:    "adaeze@example.com",
		FullName: "Adaeze Okafor",
	})
	if p.ID == "" {
		t.Fatalf("expected generated ID")
	}

	loaded, err := svc.Get(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Username != "adaeze" {
		t.Fatalf("unexpected profile: %+v", loaded)
	}

	if _, err := svc.Get("missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateKeepsPasswordHash(t *testing.T) {
	svc := newTestService()

	p := svc.Create(&model.Profile{Username: "adaeze", PasswordHash: "hash-1"})

	updated, err := svc.Update(p.ID, &model.Profile{
		Username:    "adaeze",
		Email:       "new@example.com",
		HomeLat:     6.5244,
		HomeLng:     3.3792,
		HomeAddress: "Lagos",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new@example.com" || updated.HomeAddress != "Lagos" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.PasswordHash != "hash-1" {
		t.Fatalf("password hash must survive profile updates")
	}

	if _, err := svc.Update("missing", &model.Profile{}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc := newTestService()

	p := svc.Create(&model.Profile{Username: "adaeze", PasswordHash: "hash-1"})

	if err := svc.UpdatePassword(p.ID, "hash-2"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	loaded, _ := svc.Get(p.ID)
	if loaded.PasswordHash != "hash-2" {
		t.Fatalf("expected new hash, got %q", loaded.PasswordHash)
	}

	if err := svc.UpdatePassword("missing", "x"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateLeavesReturnedPointersUnchanged(t *testing.T) {
	svc := newTestService()

	p := svc.Create(&model.Profile{Username: "adaeze", Email: "adaeze@example.com"})
	before, err := svc.Get(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := svc.Update(p.ID, &model.Profile{Username: "changed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if before.Username != "adaeze" {
		t.Fatalf("previously returned profile mutated to %q", before.Username)
	}

	if err := svc.UpdatePassword(p.ID, "hash-2"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if before.PasswordHash != "" {
		t.Fatalf("previously returned profile gained a password hash")
	}
}

func TestConcurrentReadsAndUpdates(t *testing.T) {
	svc := newTestService()
	p := svc.Create(&model.Profile{Username: "adaeze", Email: "adaeze@example.com"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, err := svc.Update(p.ID, &model.Profile{
					Username: fmt.Sprintf("adaeze-%d-%d", n, j),
					Email:    "adaeze@example.com",
				}); err != nil {
					t.Errorf("update: %v", err)
					return
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				loaded, err := svc.Get(p.ID)
				if err != nil {
					t.Errorf("get: %v", err)
					return
				}
				if _, err := json.Marshal(loaded); err != nil {
					t.Errorf("marshal: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMergePrefersNewerRedisEntries(t *testing.T) {
	svc := newTestService()

	old := &model.Profile{ID: "u1", Username: "old", PasswordHash: "hash-1"}
	old.UpdatedAt = old.UpdatedAt.AddDate(0, 0, -1)
	newer := &model.Profile{ID: "u1", Username: "newer"}

	merged := svc.mergeProfilesIntoStorage(
		[]*model.Profile{old},
		map[string]*model.Profile{"u1": newer},
	)
	if merged != 1 {
		t.Fatalf("expected 1 merged profile, got %d", merged)
	}

	loaded, err := svc.Get("u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Username != "newer" {
		t.Fatalf("expected Redis entry to win, got %q", loaded.Username)
	}
	if loaded.PasswordHash != "hash-1" {
		t.Fatalf("expected hash carried over from PostgreSQL row")
	}
}
