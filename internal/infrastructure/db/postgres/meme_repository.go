package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/memevault/meme-api/internal/core/domain"
)

const memeColumns = `id, title, description, imageurl, createdat`

type MemeRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewMemeRepository(db *sql.DB) *MemeRepository {
	return &MemeRepository{db: db, timeout: queryTimeout}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeme(row rowScanner) (*domain.Meme, error) {
	var (
		m           domain.Meme
		description sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Title, &description, &m.ImageURL, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Description = description.String
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

func (r *MemeRepository) List(ctx context.Context) ([]domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memeColumns+` FROM memes ORDER BY createdat DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	memes := []domain.Meme{}
	for rows.Next() {
		m, err := scanMeme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meme: %w", err)
		}
		memes = append(memes, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return memes, nil
}

func (r *MemeRepository) Random(ctx context.Context) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT `+memeColumns+` FROM memes ORDER BY RANDOM() LIMIT 1`)
	m, err := scanMeme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoMemes
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *MemeRepository) FindByID(ctx context.Context, id int64) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT `+memeColumns+` FROM memes WHERE id = $1`, id)
	m, err := scanMeme(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemeNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query :=
		`INSERT INTO memes (title, description, imageurl, createdat)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + memeColumns

	description := sql.NullString{String: meme.Description, Valid: meme.Description != ""}
	row := r.db.QueryRowContext(ctx, query, meme.Title, description, meme.ImageURL, meme.CreatedAt)
	m, err := scanMeme(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}
