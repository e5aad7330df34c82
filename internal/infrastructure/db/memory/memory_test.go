package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/memevault/meme-api/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	users := db.Users()

	u, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("expected id 1, got %d", u.ID)
	}

	if _, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "other"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	found, err := users.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if found.PasswordHash != "h" {
		t.Errorf("first registration must win, got hash %q", found.PasswordHash)
	}

	if _, err := users.FindByUsername(ctx, "Alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("usernames are case sensitive, got %v", err)
	}
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	users := New().Users()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := users.Create(context.Background(), &domain.User{Username: "race", PasswordHash: fmt.Sprint(i)})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one winner, got %d", success)
	}
}

func TestMemeRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	memes := db.Memes()

	if _, err := memes.Random(ctx); !errors.Is(err, domain.ErrNoMemes) {
		t.Fatalf("expected ErrNoMemes, got %v", err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := memes.Create(ctx, &domain.Meme{
			Title:     fmt.Sprintf("m%d", i),
			ImageURL:  "u",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := memes.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Title != "m2" || list[2].Title != "m0" {
		t.Errorf("expected newest first, got %+v", list)
	}

	m, err := memes.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if m.Title != "m1" {
		t.Errorf("expected m1, got %q", m.Title)
	}
	if _, err := memes.FindByID(ctx, 99); !errors.Is(err, domain.ErrMemeNotFound) {
		t.Errorf("expected ErrMemeNotFound, got %v", err)
	}

	r, err := memes.Random(ctx)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if r.ID < 1 || r.ID > 3 {
		t.Errorf("random returned unknown meme %d", r.ID)
	}
}
