// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

// Store holds users and memes behind a single mutex.
type Store struct {
	mu    sync.Mutex
	users map[string]*domain.User
	memes []domain.Meme
	now   func() time.Time

	userIDCounter int64
	memeIDCounter int64
}

func New() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		now:   time.Now,
	}
}

var _ ports.UserRepository = (*UserRepo)(nil)
var _ ports.MemeRepository = (*MemeRepo)(nil)

func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func (s *Store) Memes() *MemeRepo { return &MemeRepo{s} }

func (s *Store) Ping(context.Context) error { return nil }

// --- UserRepository ---

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}

	r.s.userIDCounter++
	stored := &domain.User{
		ID:           r.s.userIDCounter,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    r.s.now().UTC(),
	}
	r.s.users[stored.Username] = stored

	out := *stored
	return &out, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// --- MemeRepository ---

type MemeRepo struct {
	s *Store
}

func (r *MemeRepo) List(context.Context) ([]domain.Meme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Meme, len(r.s.memes))
	copy(out, r.s.memes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemeRepo) Random(context.Context) (*domain.Meme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.memes) == 0 {
		return nil, domain.ErrNoMemes
	}
	m := r.s.memes[rand.IntN(len(r.s.memes))]
	return &m, nil
}

func (r *MemeRepo) FindByID(_ context.Context, id int64) (*domain.Meme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.memes {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrMemeNotFound
}

func (r *MemeRepo) Create(_ context.Context, meme *domain.Meme) (*domain.Meme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.memeIDCounter++
	stored := *meme
	stored.ID = r.s.memeIDCounter
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.s.now()
	}
	stored.CreatedAt = stored.CreatedAt.UTC()
	r.s.memes = append(r.s.memes, stored)

	out := stored
	return &out, nil
}
