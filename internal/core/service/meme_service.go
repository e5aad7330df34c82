package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

type MemeService struct {
	repo   ports.MemeRepository
	cache  ports.MemeCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewMemeService wires the repository with an optional read cache. A nil
// cache disables caching.
func NewMemeService(repo ports.MemeRepository, cache ports.MemeCache, logger zerolog.Logger) *MemeService {
	if cache == nil {
		cache = noopCache{}
	}
	return &MemeService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *MemeService) List(ctx context.Context) ([]domain.Meme, error) {
	memes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if memes == nil {
		memes = []domain.Meme{}
	}
	return memes, nil
}

func (s *MemeService) Random(ctx context.Context) (*domain.Meme, error) {
	return s.repo.Random(ctx)
}

// Get reads through the cache. Cache failures are logged and the
// repository is consulted as if the entry were missing.
func (s *MemeService) Get(ctx context.Context, id int64) (*domain.Meme, error) {
	cached, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("meme_id", id).Msg("meme cache read failed")
	} else if found {
		return cached, nil
	}

	meme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, meme)
	return meme, nil
}

func (s *MemeService) Create(ctx context.Context, input ports.CreateMemeInput) (*domain.Meme, error) {
	meme := &domain.Meme{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := meme.Validate(); err != nil {
		return nil, err
	}
	meme.CreatedAt = s.now().UTC()

	created, err := s.repo.Create(ctx, meme)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("meme_id", created.ID).
		Str("requested_by", input.RequestedBy).
		Msg("meme created")
	s.store(ctx, created)
	return created, nil
}

func (s *MemeService) store(ctx context.Context, meme *domain.Meme) {
	if err := s.cache.Set(ctx, meme); err != nil {
		s.logger.Warn().Err(err).Int64("meme_id", meme.ID).Msg("meme cache write failed")
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) (*domain.Meme, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, *domain.Meme) error { return nil }
